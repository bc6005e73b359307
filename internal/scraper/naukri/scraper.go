package naukri

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-jobscout/internal/browser"
	"go-jobscout/internal/filter"
	"go-jobscout/internal/models"
	"go-jobscout/internal/scraper"

	"go.uber.org/zap"
)

const (
	SourceName      = "Naukri"
	DefaultBaseURL  = "https://www.naukri.com"
	DefaultMaxPages = 3

	DefaultPageTimeout        = 20 * time.Second
	DefaultListingWaitTimeout = 20 * time.Second
	DefaultDetailTimeout      = 15 * time.Second
	DefaultSkillWaitTimeout   = 10 * time.Second
)

// timestampLayout is ISO 8601 with fixed-width microseconds so stamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Config drives one crawl
type Config struct {
	BaseURL   string
	Source    string
	Locations []string
	MaxPages  int

	PageTimeout        time.Duration
	ListingWaitTimeout time.Duration
	DetailTimeout      time.Duration
	SkillWaitTimeout   time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Source == "" {
		c.Source = SourceName
	}
	if len(c.Locations) == 0 {
		c.Locations = []string{"india", "remote"}
	}
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.PageTimeout <= 0 {
		c.PageTimeout = DefaultPageTimeout
	}
	if c.ListingWaitTimeout <= 0 {
		c.ListingWaitTimeout = DefaultListingWaitTimeout
	}
	if c.DetailTimeout <= 0 {
		c.DetailTimeout = DefaultDetailTimeout
	}
	if c.SkillWaitTimeout <= 0 {
		c.SkillWaitTimeout = DefaultSkillWaitTimeout
	}
	return c
}

// CrawlTarget is one (location, page) step of the crawl
type CrawlTarget struct {
	Location string
	Page     int
}

// ListingURL builds <base>/jobs-in-<location>-<page>.
func ListingURL(baseURL, location string, page int) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(location)), " ", "-")
	return fmt.Sprintf("%s/jobs-in-%s-%d", strings.TrimRight(baseURL, "/"), slug, page)
}

type Option func(*Scraper)

func WithSelectors(selectors Selectors) Option {
	return func(s *Scraper) { s.selectors = selectors }
}

func WithClock(now func() time.Time) Option {
	return func(s *Scraper) { s.now = now }
}

func WithScreenshots(debugger *browser.ScreenshotDebugger) Option {
	return func(s *Scraper) { s.screenshots = debugger }
}

// Scraper crawls Naukri search pages location by location, keeps entry-level
// listings and enriches them with skills from their detail pages.
type Scraper struct {
	cfg         Config
	selectors   Selectors
	logger      *zap.Logger
	now         func() time.Time
	screenshots *browser.ScreenshotDebugger
}

var _ scraper.Scraper = (*Scraper)(nil)

func NewScraper(cfg Config, logger *zap.Logger, opts ...Option) *Scraper {
	s := &Scraper{
		cfg:       cfg.withDefaults(),
		selectors: DefaultSelectors(),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scraper) Name() string {
	return s.cfg.Source
}

type pageStatus int

const (
	pageScraped pageStatus = iota
	pageFailed
	pageExhausted
)

// run is the mutable state of one Scrape call
type run struct {
	page      browser.Page
	extractor *Extractor
	enricher  *Enricher
	jobs      []models.JobPosting
	stats     scraper.Stats
	lastStamp time.Time
}

// stamp formats now, never going backwards within a run.
func (r *run) stamp(now time.Time) string {
	if now.Before(r.lastStamp) {
		now = r.lastStamp
	}
	r.lastStamp = now
	return now.Format(timestampLayout)
}

func (s *Scraper) Scrape(ctx context.Context, launcher browser.Launcher) (*scraper.Result, error) {
	s.logger.Info(fmt.Sprintf("🔍 Starting %s scrape for %d locations...", s.cfg.Source, len(s.cfg.Locations)),
		zap.Strings("locations", s.cfg.Locations),
		zap.Int("max_pages", s.cfg.MaxPages),
	)

	session, err := launcher.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Warn("⚠️ Failed to close browser session", zap.Error(err))
		}
	}()

	page, err := session.NewPage()
	if err != nil {
		return nil, fmt.Errorf("open listing page: %w", err)
	}
	defer page.Close()

	r := &run{
		page:      page,
		extractor: NewExtractor(s.selectors, s.cfg.BaseURL, s.logger),
		enricher:  NewEnricher(session, s.selectors, s.cfg.DetailTimeout, s.cfg.SkillWaitTimeout, s.logger),
		jobs:      make([]models.JobPosting, 0),
	}

	for i, location := range s.cfg.Locations {
		s.logger.Info(fmt.Sprintf("🌍 Location [%d/%d]: %s", i+1, len(s.cfg.Locations), strings.ToUpper(location)))
		r.stats.Locations++
		if err := s.scrapeLocation(ctx, r, location); err != nil {
			s.logger.Warn("🛑 Scrape interrupted, returning partial results", zap.Error(err), zap.Int("jobs", len(r.jobs)))
			return s.result(r), err
		}
	}

	result := s.result(r)
	s.logger.Info(fmt.Sprintf("✅ Extracted %d %s jobs", len(result.Jobs), s.cfg.Source), zap.String("summary", result.Stats.Summary()))
	return result, nil
}

func (s *Scraper) scrapeLocation(ctx context.Context, r *run, location string) error {
	for pageNum := 1; pageNum <= s.cfg.MaxPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch s.scrapePage(r, CrawlTarget{Location: location, Page: pageNum}) {
		case pageExhausted:
			r.stats.LocationsExhausted++
			s.logger.Info("⚠️ No job cards found, moving to next location",
				zap.String("location", location), zap.Int("page", pageNum))
			return nil
		case pageFailed:
			r.stats.PagesFailed++
		}
	}
	return nil
}

// scrapePage handles one listing page. Anything that goes wrong in here,
// panics included, marks just this page as failed.
func (s *Scraper) scrapePage(r *run, target CrawlTarget) (status pageStatus) {
	url := ListingURL(s.cfg.BaseURL, target.Location, target.Page)
	log := s.logger.With(zap.String("location", target.Location), zap.Int("page", target.Page))
	log.Info(fmt.Sprintf("➡️ Page %d: %s", target.Page, url))
	r.stats.PagesAttempted++

	defer func() {
		if rec := recover(); rec != nil {
			s.pageProblem(r, log, target, "process", browser.Failure(fmt.Errorf("panic: %v", rec)))
			status = pageFailed
		}
	}()

	if nav := r.page.Navigate(url, s.cfg.PageTimeout); !nav.OK() {
		s.pageProblem(r, log, target, "navigate", nav)
		return pageFailed
	}
	if wait := r.page.WaitForSelector(s.selectors.ListingReady(), s.cfg.ListingWaitTimeout); !wait.OK() {
		s.pageProblem(r, log, target, "wait for listings", wait)
		return pageFailed
	}

	cards, variant, err := s.selectors.JobCard.All(r.page)
	if len(cards) == 0 {
		if err != nil {
			s.pageProblem(r, log, target, "query cards", browser.Failure(err))
			return pageFailed
		}
		return pageExhausted
	}
	log.Info(fmt.Sprintf("📦 Found %d job cards", len(cards)), zap.String("selector", variant))

	for _, card := range cards {
		s.processCard(r, card, target)
	}
	return pageScraped
}

func (s *Scraper) processCard(r *run, card browser.Element, target CrawlTarget) {
	r.stats.CardsSeen++
	listing := r.extractor.Extract(card, target.Location)

	if !filter.IsEntryLevel(listing.Experience) {
		r.stats.CardsIneligible++
		s.logger.Debug("skipping listing above entry level",
			zap.String("title", models.Deref(listing.Title)),
			zap.String("experience", listing.Experience),
		)
		return
	}

	skills := r.enricher.FetchSkills(listing.DetailLink)

	job := models.JobPosting{
		Title:      listing.Title,
		Company:    listing.Company,
		Experience: listing.Experience,
		Location:   listing.Location,
		Skills:     NormalizeSkills(skills),
		Source:     s.cfg.Source,
		ScrapedAt:  r.stamp(s.now()),
		DetailURL:  listing.DetailLink,
	}
	r.jobs = append(r.jobs, job)
	s.logger.Info(fmt.Sprintf("      ✅ %s - %s", models.Deref(job.Title), models.Deref(job.Company)),
		zap.Int("skills", len(job.Skills)))
}

func (s *Scraper) pageProblem(r *run, log *zap.Logger, target CrawlTarget, step string, out browser.Outcome) {
	if out.Status == browser.StatusTimeout {
		r.stats.PagesTimedOut++
		log.Warn(fmt.Sprintf("⚠️ Timeout on page %d for %s", target.Page, target.Location),
			zap.String("step", step), zap.Error(out.Err))
	} else {
		log.Error(fmt.Sprintf("❌ Error scraping %s page %d", target.Location, target.Page),
			zap.String("step", step), zap.Error(out.Err))
		log.Debug("page failure stack", zap.String("stack", out.Stack()))
	}

	name := fmt.Sprintf("%s-%s-page-%d", strings.ToLower(s.cfg.Source), target.Location, target.Page)
	if _, err := s.screenshots.CaptureAndLog(r.page, name, fmt.Sprintf("🚨 %s: page %d for %s failed (%s)", s.cfg.Source, target.Page, target.Location, out.Status)); err != nil {
		log.Debug("screenshot failed", zap.Error(err))
	}
}

func (s *Scraper) result(r *run) *scraper.Result {
	stats := r.stats
	es := r.enricher.Stats()
	stats.EnrichAttempts = es.Attempts
	stats.EnrichTimeouts = es.Timeouts
	stats.EnrichFailures = es.Failures
	stats.Jobs = len(r.jobs)
	return &scraper.Result{Jobs: r.jobs, Stats: stats}
}
