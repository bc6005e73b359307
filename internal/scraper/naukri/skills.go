package naukri

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeSkills title-cases skills and drops case-insensitive duplicates,
// keeping the first occurrence. The result is never nil.
func NormalizeSkills(raw []string) []string {
	title := cases.Title(language.English)
	fold := cases.Fold()

	seen := make(map[string]bool, len(raw))
	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := fold.String(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, title.String(s))
	}
	return skills
}
