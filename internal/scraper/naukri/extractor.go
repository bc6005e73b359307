package naukri

import (
	"net/url"
	"strings"

	"go-jobscout/internal/browser"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Listing holds the raw fields pulled from one job card.
type Listing struct {
	Title      *string
	Company    *string
	Experience string
	Location   string
	DetailLink string
}

// Extractor reads listing cards using the selector table.
type Extractor struct {
	selectors Selectors
	baseURL   *url.URL
	logger    *zap.Logger
}

func NewExtractor(selectors Selectors, baseURL string, logger *zap.Logger) *Extractor {
	base, err := url.Parse(baseURL)
	if err != nil {
		logger.Warn("⚠️ Invalid base URL, relative links will be kept as-is", zap.String("base_url", baseURL), zap.Error(err))
		base = nil
	}
	return &Extractor{
		selectors: selectors,
		baseURL:   base,
		logger:    logger,
	}
}

// Extract pulls title, company, experience and location from card.
// location is the label being crawled; it is used when the card has no location.
func (x *Extractor) Extract(card browser.Element, location string) Listing {
	titleEl := x.match(card, "title", x.selectors.Title)

	listing := Listing{
		Title:   x.text(titleEl),
		Company: x.text(x.match(card, "company", x.selectors.Company)),
	}

	if exp := x.text(x.match(card, "experience", x.selectors.Experience)); exp != nil {
		listing.Experience = *exp
	}

	if loc := x.text(x.match(card, "location", x.selectors.Location)); loc != nil {
		listing.Location = *loc
	} else {
		listing.Location = LocationLabel(location)
	}

	if titleEl != nil {
		href, err := titleEl.Attribute("href")
		if err != nil {
			x.logger.Debug("could not read title link", zap.Error(err))
		}
		listing.DetailLink = x.resolve(strings.TrimSpace(href))
	}

	return listing
}

func (x *Extractor) match(card browser.Element, field string, chain SelectorChain) browser.Element {
	el, _, err := chain.First(card)
	if err != nil {
		x.logger.Debug("selector variants errored", zap.String("field", field), zap.Error(err))
	}
	return el
}

// text returns the trimmed text of el, or nil when el is missing or unreadable.
func (x *Extractor) text(el browser.Element) *string {
	if el == nil {
		return nil
	}
	raw, err := el.Text()
	if err != nil {
		x.logger.Debug("could not read element text", zap.Error(err))
		return nil
	}
	trimmed := strings.TrimSpace(raw)
	return &trimmed
}

func (x *Extractor) resolve(href string) string {
	if href == "" || x.baseURL == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return x.baseURL.ResolveReference(ref).String()
}

// LocationLabel formats a crawl location for display ("new delhi" -> "New Delhi").
func LocationLabel(location string) string {
	return cases.Title(language.English).String(strings.TrimSpace(location))
}
