package naukri

import (
	"fmt"
	"strings"
	"time"

	"go-jobscout/internal/browser"

	"go.uber.org/zap"
)

// EnricherStats counts skill lookups and how they ended.
type EnricherStats struct {
	Attempts int
	Timeouts int
	Failures int
}

// Enricher opens a listing's detail page in its own tab and reads the
// key-skill links. Any failure yields no skills; it never aborts the crawl.
type Enricher struct {
	session     browser.Session
	selectors   Selectors
	navTimeout  time.Duration
	waitTimeout time.Duration
	logger      *zap.Logger
	stats       EnricherStats
}

func NewEnricher(session browser.Session, selectors Selectors, navTimeout, waitTimeout time.Duration, logger *zap.Logger) *Enricher {
	return &Enricher{
		session:     session,
		selectors:   selectors,
		navTimeout:  navTimeout,
		waitTimeout: waitTimeout,
		logger:      logger,
	}
}

// FetchSkills returns the raw skill texts listed on link's page.
// An empty link returns immediately without opening a page.
func (e *Enricher) FetchSkills(link string) []string {
	if link == "" {
		return []string{}
	}
	e.stats.Attempts++

	skills, out := e.fetch(link)
	switch out.Status {
	case browser.StatusSuccess:
		return skills
	case browser.StatusTimeout:
		e.stats.Timeouts++
		e.logger.Warn("⏳ Timeout fetching skills", zap.String("url", link), zap.Error(out.Err))
	default:
		e.stats.Failures++
		e.logger.Warn("⚠️ Could not fetch skills", zap.String("url", link), zap.Error(out.Err))
		e.logger.Debug("skill fetch failure stack", zap.String("stack", out.Stack()))
	}
	return []string{}
}

func (e *Enricher) Stats() EnricherStats {
	return e.stats
}

// fetch owns the detail tab: it is closed on every return path, panics included.
func (e *Enricher) fetch(link string) (skills []string, out browser.Outcome) {
	page, err := e.session.NewPage()
	if err != nil {
		return nil, browser.Failure(fmt.Errorf("open detail page: %w", err))
	}
	defer func() {
		if err := page.Close(); err != nil {
			e.logger.Debug("could not close detail page", zap.Error(err))
		}
	}()
	defer func() {
		if rec := recover(); rec != nil {
			skills = nil
			out = browser.Failure(fmt.Errorf("panic while reading %s: %v", link, rec))
		}
	}()

	if nav := page.Navigate(link, e.navTimeout); !nav.OK() {
		return nil, nav
	}
	if wait := page.WaitForSelector(e.selectors.SkillContainer.Union(), e.waitTimeout); !wait.OK() {
		return nil, wait
	}

	var lastErr error
	for _, container := range e.selectors.SkillContainer {
		items, err := page.QueryAll(container + " " + e.selectors.SkillItem)
		if err != nil {
			lastErr = err
			continue
		}
		if found := collectText(items); len(found) > 0 {
			return found, browser.Success()
		}
	}
	if lastErr != nil {
		return nil, browser.Failure(lastErr)
	}
	return []string{}, browser.Success()
}

func collectText(items []browser.Element) []string {
	texts := make([]string, 0, len(items))
	for _, item := range items {
		raw, err := item.Text()
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(raw); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}
