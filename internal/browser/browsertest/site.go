// Package browsertest provides an in-memory browser.Launcher backed by HTML
// fixtures, for testing scrapers without a real browser.
package browsertest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-jobscout/internal/browser"

	"github.com/PuerkitoBio/goquery"
)

const blankPage = "<html><head></head><body></body></html>"

// Site serves fixture pages by URL and records every interaction.
// Unknown URLs load a blank page, the way a real site answers with an
// empty results page.
type Site struct {
	pages     map[string]string
	outcomes  map[string]browser.Outcome
	panics    map[string]bool
	LaunchErr error

	navigations    []string
	pagesOpened    int
	pagesClosed    int
	sessionsClosed int
}

func NewSite() *Site {
	return &Site{
		pages:    make(map[string]string),
		outcomes: make(map[string]browser.Outcome),
		panics:   make(map[string]bool),
	}
}

// Serve registers the HTML returned for url.
func (s *Site) Serve(url, html string) *Site {
	s.pages[url] = html
	return s
}

// TimeoutOn makes navigation to url time out.
func (s *Site) TimeoutOn(url string) *Site {
	s.outcomes[url] = browser.Timeout(fmt.Errorf("%w: navigating to %s", browser.ErrTimeout, url))
	return s
}

// FailOn makes navigation to url fail with err.
func (s *Site) FailOn(url string, err error) *Site {
	s.outcomes[url] = browser.Failure(err)
	return s
}

// PanicOn makes any query on the page loaded from url panic.
func (s *Site) PanicOn(url string) *Site {
	s.panics[url] = true
	return s
}

func (s *Site) Launch(ctx context.Context) (browser.Session, error) {
	if s.LaunchErr != nil {
		return nil, s.LaunchErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &session{site: s}, nil
}

// Navigations lists every URL navigated to, in order.
func (s *Site) Navigations() []string {
	return append([]string(nil), s.navigations...)
}

// Visits counts navigations to url.
func (s *Site) Visits(url string) int {
	n := 0
	for _, u := range s.navigations {
		if u == url {
			n++
		}
	}
	return n
}

// VisitsWithPrefix counts navigations to URLs starting with prefix.
func (s *Site) VisitsWithPrefix(prefix string) int {
	n := 0
	for _, u := range s.navigations {
		if strings.HasPrefix(u, prefix) {
			n++
		}
	}
	return n
}

func (s *Site) PagesOpened() int { return s.pagesOpened }

// OpenPages is the number of pages opened but not yet closed.
func (s *Site) OpenPages() int { return s.pagesOpened - s.pagesClosed }

func (s *Site) SessionsClosed() int { return s.sessionsClosed }

type session struct {
	site *Site
}

func (ss *session) NewPage() (browser.Page, error) {
	ss.site.pagesOpened++
	return &page{site: ss.site}, nil
}

func (ss *session) Close() error {
	ss.site.sessionsClosed++
	return nil
}

type page struct {
	site   *Site
	url    string
	doc    *goquery.Document
	closed bool
}

func (p *page) Navigate(url string, _ time.Duration) browser.Outcome {
	p.site.navigations = append(p.site.navigations, url)
	p.url = url
	p.doc = nil

	if out, ok := p.site.outcomes[url]; ok {
		return out
	}

	html, ok := p.site.pages[url]
	if !ok {
		html = blankPage
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return browser.Failure(err)
	}
	p.doc = doc
	return browser.Success()
}

func (p *page) WaitForSelector(selector string, _ time.Duration) browser.Outcome {
	if p.doc == nil {
		return browser.Failure(fmt.Errorf("no document loaded"))
	}
	if p.doc.Find(selector).Length() > 0 {
		return browser.Success()
	}
	return browser.Timeout(fmt.Errorf("%w: waiting for %q on %s", browser.ErrTimeout, selector, p.url))
}

func (p *page) QueryAll(selector string) ([]browser.Element, error) {
	root, err := p.root()
	if err != nil {
		return nil, err
	}
	return root.QueryAll(selector)
}

func (p *page) QuerySingle(selector string) (browser.Element, error) {
	root, err := p.root()
	if err != nil {
		return nil, err
	}
	return root.QuerySingle(selector)
}

func (p *page) Close() error {
	if !p.closed {
		p.closed = true
		p.site.pagesClosed++
	}
	return nil
}

func (p *page) root() (browser.Element, error) {
	if p.site.panics[p.url] {
		panic(fmt.Sprintf("browsertest: query on %s", p.url))
	}
	if p.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	return browser.NewSelectionElement(p.doc.Selection), nil
}
