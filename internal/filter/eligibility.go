package filter

import (
	"math"
	"regexp"
	"unicode"
)

// MaxEntryLevelYears is the highest minimum experience still counted as entry level.
const MaxEntryLevelYears = 2

var (
	fresherRegex = regexp.MustCompile(`(?i)fresher`)
	//any script's decimal digits, not just ASCII
	yearsRegex = regexp.MustCompile(`\p{Nd}+`)
)

// IsEntryLevel reports whether a listing's raw experience text qualifies.
// "fresher" anywhere wins outright; otherwise the smallest number in the
// text must be at most MaxEntryLevelYears. Text without numbers never qualifies.
func IsEntryLevel(experience string) bool {
	if fresherRegex.MatchString(experience) {
		return true
	}

	matches := yearsRegex.FindAllString(experience, -1)
	if len(matches) == 0 {
		return false
	}

	for _, m := range matches {
		n, ok := parseDigits(m)
		if !ok {
			//too large for int, can't be <= 2 anyway
			continue
		}
		if n <= MaxEntryLevelYears {
			return true
		}
	}
	return false
}

// parseDigits reads a run of decimal digits from any script ("१२" is 12).
// ok is false when the value does not fit in an int.
func parseDigits(s string) (n int, ok bool) {
	for _, r := range s {
		d := digitValue(r)
		if d < 0 {
			return 0, false
		}
		if n > (math.MaxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

// digitValue returns the value of a Unicode decimal digit, or -1.
// Decimal digits are encoded in contiguous runs of ten starting at zero,
// so the value is the offset from the start of the run.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	if !unicode.IsDigit(r) {
		return -1
	}
	start := r
	for start > 0 && unicode.IsDigit(start-1) {
		start--
	}
	return int(r-start) % 10
}
