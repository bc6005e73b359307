package naukri

import (
	"errors"
	"strings"

	"go-jobscout/internal/browser"
)

// SelectorChain is an ordered list of CSS selector variants for one field.
// The site has shipped more than one class-naming scheme, so each variant is
// tried in order and the first match wins.
type SelectorChain []string

type queryable interface {
	QueryAll(selector string) ([]browser.Element, error)
	QuerySingle(selector string) (browser.Element, error)
}

// First returns the first element matched by any variant together with the
// variant that matched. Variants that error are skipped; their errors are
// returned joined, for logging, when nothing matched.
func (c SelectorChain) First(root queryable) (browser.Element, string, error) {
	var errs []error
	for _, sel := range c {
		el, err := root.QuerySingle(sel)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if el != nil {
			return el, sel, nil
		}
	}
	return nil, "", errors.Join(errs...)
}

// All returns the elements of the first variant that matches anything.
func (c SelectorChain) All(root queryable) ([]browser.Element, string, error) {
	var errs []error
	for _, sel := range c {
		els, err := root.QueryAll(sel)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(els) > 0 {
			return els, sel, nil
		}
	}
	return nil, "", errors.Join(errs...)
}

// Union joins the variants into one selector list matching any of them.
func (c SelectorChain) Union() string {
	return strings.Join(c, ", ")
}

// Selectors is the full selector table for listing and detail pages.
type Selectors struct {
	//Listing page
	ListingContainer SelectorChain
	JobCard          SelectorChain
	Title            SelectorChain
	Company          SelectorChain
	Experience       SelectorChain
	Location         SelectorChain

	//Detail page. SkillItem is looked up under each SkillContainer variant.
	SkillContainer SelectorChain
	SkillItem      string
}

// DefaultSelectors covers both markup generations seen on naukri.com.
// Neither generation is assumed to be retired.
func DefaultSelectors() Selectors {
	jobCard := SelectorChain{"div.cust-job-tuple.layout-wrapper", "div.srp-jobtuple-wrapper", "article.jobTuple"}
	return Selectors{
		ListingContainer: append(SelectorChain{"#listContainer"}, jobCard...),
		JobCard:          jobCard,
		Title:            SelectorChain{"a.title", "a.title.ellipsis"},
		Company:          SelectorChain{"a.comp-name", "a.subTitle.ellipsis"},
		Experience:       SelectorChain{"span.expwdth", "li.experience"},
		Location:         SelectorChain{"span.locWdth", "li.location"},
		SkillContainer:   SelectorChain{"div.styles_key_skill_GlPn_", "div.styles_key-skill__GIPn_", "div.key-skill"},
		SkillItem:        "a",
	}
}

// ListingReady is the selector a listing page is waited on: any container or
// any card variant, so a page in either markup generation counts as loaded.
func (s Selectors) ListingReady() string {
	seen := make(map[string]bool, len(s.ListingContainer)+len(s.JobCard))
	var all SelectorChain
	for _, sel := range append(append(SelectorChain{}, s.ListingContainer...), s.JobCard...) {
		if !seen[sel] {
			seen[sel] = true
			all = append(all, sel)
		}
	}
	return all.Union()
}
