package browser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

var errNoDocument = errors.New("browser: no document loaded")

type StaticOptions struct {
	UserAgent string
}

// StaticLauncher fetches pages over plain HTTP with colly and queries them
// with goquery. Scripts are not executed, so it only suits server-rendered
// markup.
type StaticLauncher struct {
	opts StaticOptions
}

func NewStaticLauncher(opts StaticOptions) *StaticLauncher {
	return &StaticLauncher{opts: opts}
}

func (l *StaticLauncher) Launch(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(colly.AllowURLRevisit())
	if l.opts.UserAgent != "" {
		c.UserAgent = l.opts.UserAgent
	}
	return &staticSession{collector: c}, nil
}

type staticSession struct {
	collector *colly.Collector
}

func (s *staticSession) NewPage() (Page, error) {
	return &staticPage{collector: s.collector}, nil
}

func (s *staticSession) Close() error {
	return nil
}

type staticPage struct {
	collector *colly.Collector
	doc       *goquery.Document
}

func (p *staticPage) Navigate(url string, timeout time.Duration) Outcome {
	p.doc = nil

	c := p.collector.Clone()
	c.SetRequestTimeout(timeout)

	var doc *goquery.Document
	var parseErr error
	c.OnResponse(func(r *colly.Response) {
		doc, parseErr = goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
	})

	if err := c.Visit(url); err != nil {
		return FromError(fmt.Errorf("visit %s: %w", url, err))
	}
	if parseErr != nil {
		return Failure(fmt.Errorf("parse %s: %w", url, parseErr))
	}
	if doc == nil {
		return Failure(fmt.Errorf("empty response from %s", url))
	}

	p.doc = doc
	return Success()
}

// WaitForSelector checks the loaded document once; a static document never
// changes, so a missing selector is reported as a timeout right away.
func (p *staticPage) WaitForSelector(selector string, timeout time.Duration) Outcome {
	if p.doc == nil {
		return Failure(errNoDocument)
	}
	if p.doc.Find(selector).Length() > 0 {
		return Success()
	}
	return Timeout(fmt.Errorf("%w: selector %q not present", ErrTimeout, selector))
}

func (p *staticPage) QueryAll(selector string) ([]Element, error) {
	if p.doc == nil {
		return nil, errNoDocument
	}
	return NewSelectionElement(p.doc.Selection).QueryAll(selector)
}

func (p *staticPage) QuerySingle(selector string) (Element, error) {
	if p.doc == nil {
		return nil, errNoDocument
	}
	return NewSelectionElement(p.doc.Selection).QuerySingle(selector)
}

func (p *staticPage) Close() error {
	p.doc = nil
	return nil
}
