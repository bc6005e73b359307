// Define an interface for all scrapers
// Ensure consistency

package scraper

import (
	"context"
	"fmt"

	"go-jobscout/internal/browser"
	"go-jobscout/internal/models"
)

// Scraper defines the interface that all platform scrapers must implement
type Scraper interface {
	//Scrape launches a browser session, crawls the platform and closes the session.
	//Per-page and per-listing problems never surface as an error; the error is
	//reserved for launch failures and context cancellation.
	Scrape(ctx context.Context, launcher browser.Launcher) (*Result, error)

	//Name is the platform name (Naukri, ...)
	Name() string
}

// Result is what one crawl run produced
type Result struct {
	Jobs  []models.JobPosting
	Stats Stats
}

// Stats are informational counters for a run
type Stats struct {
	Locations          int `json:"locations"`
	LocationsExhausted int `json:"locations_exhausted"`
	PagesAttempted     int `json:"pages_attempted"`
	PagesFailed        int `json:"pages_failed"`
	PagesTimedOut      int `json:"pages_timed_out"`
	CardsSeen          int `json:"cards_seen"`
	CardsIneligible    int `json:"cards_ineligible"`
	EnrichAttempts     int `json:"enrich_attempts"`
	EnrichTimeouts     int `json:"enrich_timeouts"`
	EnrichFailures     int `json:"enrich_failures"`
	Jobs               int `json:"jobs"`
}

// Summary renders the counters as a single human-readable line.
func (s Stats) Summary() string {
	return fmt.Sprintf(
		"%d jobs from %d cards (%d not entry level) | pages: %d tried, %d failed (%d timeouts) | locations: %d, %d exhausted early | skill lookups: %d, %d timeouts, %d errors",
		s.Jobs, s.CardsSeen, s.CardsIneligible,
		s.PagesAttempted, s.PagesFailed, s.PagesTimedOut,
		s.Locations, s.LocationsExhausted,
		s.EnrichAttempts, s.EnrichTimeouts, s.EnrichFailures,
	)
}
