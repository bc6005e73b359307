package naukri

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

const testBaseURL = "https://naukri.test"

type card struct {
	title   string
	href    string
	company string
	exp     string
	loc     string
	legacy  bool
}

// listingPage renders a results page. With no cards it still carries the
// list container, like the site's "no more results" page.
func listingPage(cards ...card) string {
	var b strings.Builder
	b.WriteString(`<html><body><div id="listContainer">`)
	for _, c := range cards {
		if c.legacy {
			b.WriteString(`<article class="jobTuple">`)
			writeIf(&b, c.title != "", `<a class="title ellipsis" href="%s"> %s </a>`, c.href, c.title)
			writeIf(&b, c.company != "", `<a class="subTitle ellipsis">%s</a>`, c.company)
			b.WriteString(`<ul>`)
			writeIf(&b, c.exp != "", `<li class="experience">%s</li>`, c.exp)
			writeIf(&b, c.loc != "", `<li class="location">%s</li>`, c.loc)
			b.WriteString(`</ul></article>`)
			continue
		}
		b.WriteString(`<div class="cust-job-tuple layout-wrapper">`)
		writeIf(&b, c.title != "", `<a class="title" href="%s">%s</a>`, c.href, c.title)
		writeIf(&b, c.company != "", `<a class="comp-name">%s</a>`, c.company)
		writeIf(&b, c.exp != "", `<span class="expwdth">%s</span>`, c.exp)
		writeIf(&b, c.loc != "", `<span class="locWdth">%s</span>`, c.loc)
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func detailPage(skills ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="styles_key_skill_GlPn_">`)
	for _, s := range skills {
		fmt.Fprintf(&b, `<a href="/skill">%s</a>`, s)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func writeIf(b *strings.Builder, ok bool, format string, args ...any) {
	if ok {
		fmt.Fprintf(b, format, args...)
	}
}

func newTestScraper(t *testing.T, locations []string, maxPages int, opts ...Option) *Scraper {
	t.Helper()
	return NewScraper(Config{
		BaseURL:   testBaseURL,
		Locations: locations,
		MaxPages:  maxPages,
	}, zaptest.NewLogger(t), opts...)
}

func fixedClock(start time.Time, steps ...time.Duration) func() time.Time {
	i := 0
	return func() time.Time {
		if i >= len(steps) {
			return start
		}
		t := start.Add(steps[i])
		i++
		return t
	}
}
