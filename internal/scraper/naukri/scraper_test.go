package naukri

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobscout/internal/browser/browsertest"
	"go-jobscout/internal/models"
	"go-jobscout/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingURL(t *testing.T) {
	tests := []struct {
		base     string
		location string
		page     int
		want     string
	}{
		{"https://www.naukri.com", "india", 1, "https://www.naukri.com/jobs-in-india-1"},
		{"https://www.naukri.com/", "remote", 3, "https://www.naukri.com/jobs-in-remote-3"},
		{"https://www.naukri.com", " New Delhi ", 2, "https://www.naukri.com/jobs-in-new-delhi-2"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ListingURL(tt.base, tt.location, tt.page))
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, SourceName, cfg.Source)
	assert.Equal(t, []string{"india", "remote"}, cfg.Locations)
	assert.Equal(t, DefaultMaxPages, cfg.MaxPages)
	assert.Equal(t, DefaultPageTimeout, cfg.PageTimeout)
	assert.Equal(t, DefaultSkillWaitTimeout, cfg.SkillWaitTimeout)
}

func TestScrape_EntryLevelJobsAreEnriched(t *testing.T) {
	site := browsertest.NewSite().
		Serve(ListingURL(testBaseURL, "india", 1), listingPage(
			card{title: "Software Engineer", href: "/job-a", company: "Acme", exp: "Fresher", loc: "Bengaluru"},
			card{title: "Staff Engineer", href: "/job-b", company: "Globex", exp: "5-8 Yrs", loc: "Pune"},
		)).
		Serve(testBaseURL+"/job-a", detailPage("Python", "SQL", "python"))

	s := newTestScraper(t, []string{"india"}, 1)
	res, err := s.Scrape(context.Background(), site)
	require.NoError(t, err)
	require.Len(t, res.Jobs, 1)

	job := res.Jobs[0]
	assert.Equal(t, "Software Engineer", models.Deref(job.Title))
	assert.Equal(t, "Acme", models.Deref(job.Company))
	assert.Equal(t, "Fresher", job.Experience)
	assert.Equal(t, "Bengaluru", job.Location)
	assert.Equal(t, []string{"Python", "Sql"}, job.Skills)
	assert.Equal(t, SourceName, job.Source)
	assert.Equal(t, testBaseURL+"/job-a", job.DetailURL)

	_, err = time.Parse(timestampLayout, job.ScrapedAt)
	assert.NoError(t, err)

	assert.Equal(t, 0, site.Visits(testBaseURL+"/job-b"), "ineligible listings are not enriched")
	assert.Equal(t, 1, site.SessionsClosed())
	assert.Equal(t, 0, site.OpenPages())

	assert.Equal(t, 2, res.Stats.CardsSeen)
	assert.Equal(t, 1, res.Stats.CardsIneligible)
	assert.Equal(t, 1, res.Stats.EnrichAttempts)
	assert.Equal(t, 1, res.Stats.Jobs)
}

func TestScrape_EmptyPageStopsLocation(t *testing.T) {
	site := browsertest.NewSite().
		Serve(ListingURL(testBaseURL, "india", 1), listingPage(
			card{title: "Intern", href: "/job-1", company: "Initech", exp: "0-1 Yrs"},
		)).
		Serve(ListingURL(testBaseURL, "india", 2), listingPage())

	s := newTestScraper(t, []string{"india", "remote"}, 3)
	res, err := s.Scrape(context.Background(), site)
	require.NoError(t, err)

	assert.Equal(t, 1, site.Visits(ListingURL(testBaseURL, "india", 2)))
	assert.Equal(t, 0, site.Visits(ListingURL(testBaseURL, "india", 3)))
	assert.Equal(t, 3, site.VisitsWithPrefix(testBaseURL+"/jobs-in-remote-"), "blank pages fail, they do not end the location")

	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "India", res.Jobs[0].Location, "missing location falls back to the crawl label")
	assert.NotNil(t, res.Jobs[0].Skills)
	assert.Empty(t, res.Jobs[0].Skills)

	assert.Equal(t, 2, res.Stats.Locations)
	assert.Equal(t, 1, res.Stats.LocationsExhausted)
	assert.Equal(t, 5, res.Stats.PagesAttempted)
	assert.Equal(t, 3, res.Stats.PagesFailed)
	assert.Equal(t, 3, res.Stats.PagesTimedOut)
}

func TestScrape_DetailTimeoutOnlyAffectsThatListing(t *testing.T) {
	site := browsertest.NewSite().
		Serve(ListingURL(testBaseURL, "india", 1), listingPage(
			card{title: "Backend Developer", href: "/slow", company: "Acme", exp: "0-2 Yrs", loc: "Hyderabad"},
			card{title: "Frontend Developer", href: "/fast", company: "Acme", exp: "1-3 Yrs", loc: "Chennai"},
		)).
		TimeoutOn(testBaseURL+"/slow").
		Serve(testBaseURL+"/fast", detailPage("react", "TypeScript"))

	s := newTestScraper(t, []string{"india"}, 1)
	res, err := s.Scrape(context.Background(), site)
	require.NoError(t, err)
	require.Len(t, res.Jobs, 2)

	assert.NotNil(t, res.Jobs[0].Skills)
	assert.Empty(t, res.Jobs[0].Skills)
	assert.Equal(t, []string{"React", "Typescript"}, res.Jobs[1].Skills)

	assert.Equal(t, 2, res.Stats.EnrichAttempts)
	assert.Equal(t, 1, res.Stats.EnrichTimeouts)
	assert.Equal(t, 0, site.OpenPages())
}

func TestScrape_LegacyMarkup(t *testing.T) {
	site := browsertest.NewSite().
		Serve(ListingURL(testBaseURL, "remote", 1), listingPage(
			card{title: "Data Analyst", href: "/legacy-1", company: "Umbrella", exp: "Fresher", loc: "Remote", legacy: true},
		))

	s := newTestScraper(t, []string{"remote"}, 1)
	res, err := s.Scrape(context.Background(), site)
	require.NoError(t, err)
	require.Len(t, res.Jobs, 1)

	assert.Equal(t, "Data Analyst", models.Deref(res.Jobs[0].Title))
	assert.Equal(t, "Umbrella", models.Deref(res.Jobs[0].Company))
	assert.Equal(t, 1, site.Visits(testBaseURL+"/legacy-1"))
}

func TestScrape_LegacyCardsWithoutListContainer(t *testing.T) {
	page := `<html><body><section class="results">
<article class="jobTuple">
  <a class="title ellipsis" href="/legacy-bare">Graduate Trainee</a>
  <a class="subTitle ellipsis">Initech</a>
  <ul><li class="experience">Fresher</li><li class="location">Chennai</li></ul>
</article>
</section></body></html>`
	site := browsertest.NewSite().Serve(ListingURL(testBaseURL, "india", 1), page)

	s := newTestScraper(t, []string{"india"}, 1)
	res, err := s.Scrape(context.Background(), site)
	require.NoError(t, err)

	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "Graduate Trainee", models.Deref(res.Jobs[0].Title))
	assert.Equal(t, "Chennai", res.Jobs[0].Location)
	assert.Equal(t, 0, res.Stats.PagesFailed)
	assert.Equal(t, 0, res.Stats.PagesTimedOut)
}

func TestScrape_PanicFailsOnlyThatPage(t *testing.T) {
	site := browsertest.NewSite().
		Serve(ListingURL(testBaseURL, "india", 1), listingPage(
			card{title: "QA Engineer", href: "/qa", exp: "Fresher"},
		)).
		PanicOn(ListingURL(testBaseURL, "india", 1)).
		Serve(ListingURL(testBaseURL, "india", 2), listingPage(
			card{title: "Support Engineer", href: "/support", exp: "0-1 Yrs"},
		))

	s := newTestScraper(t, []string{"india"}, 2)

	var res *scraper.Result
	var err error
	require.NotPanics(t, func() { res, err = s.Scrape(context.Background(), site) })
	require.NoError(t, err)

	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "Support Engineer", models.Deref(res.Jobs[0].Title))
	assert.Nil(t, res.Jobs[0].Company)
	assert.Equal(t, 1, res.Stats.PagesFailed)
	assert.Equal(t, 0, res.Stats.PagesTimedOut)
}

func TestScrape_NavigationFailureContinues(t *testing.T) {
	site := browsertest.NewSite().
		FailOn(ListingURL(testBaseURL, "india", 1), errors.New("net::ERR_NAME_NOT_RESOLVED")).
		Serve(ListingURL(testBaseURL, "india", 2), listingPage(
			card{title: "Trainee", href: "/trainee", exp: "Fresher"},
		))

	s := newTestScraper(t, []string{"india"}, 2)
	res, err := s.Scrape(context.Background(), site)
	require.NoError(t, err)

	assert.Len(t, res.Jobs, 1)
	assert.Equal(t, 1, res.Stats.PagesFailed)
	assert.Equal(t, 0, res.Stats.PagesTimedOut)
}

func TestScrape_TimestampsNeverGoBackwards(t *testing.T) {
	site := browsertest.NewSite().
		Serve(ListingURL(testBaseURL, "india", 1), listingPage(
			card{title: "A", exp: "Fresher"},
			card{title: "B", exp: "Fresher"},
			card{title: "C", exp: "Fresher"},
		))

	start := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	s := newTestScraper(t, []string{"india"}, 1, WithClock(fixedClock(start, 0, -time.Minute, time.Second)))
	res, err := s.Scrape(context.Background(), site)
	require.NoError(t, err)
	require.Len(t, res.Jobs, 3)

	assert.Equal(t, "2025-06-01T09:30:00.000000Z", res.Jobs[0].ScrapedAt)
	assert.Equal(t, "2025-06-01T09:30:00.000000Z", res.Jobs[1].ScrapedAt)
	assert.Equal(t, "2025-06-01T09:30:01.000000Z", res.Jobs[2].ScrapedAt)
	for i := 1; i < len(res.Jobs); i++ {
		assert.LessOrEqual(t, res.Jobs[i-1].ScrapedAt, res.Jobs[i].ScrapedAt)
	}
}

func TestScrape_LaunchError(t *testing.T) {
	site := browsertest.NewSite()
	site.LaunchErr = errors.New("chromium not installed")

	s := newTestScraper(t, []string{"india"}, 1)
	res, err := s.Scrape(context.Background(), site)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, site.LaunchErr)
	assert.Empty(t, site.Navigations())
}

func TestScrape_CancelReturnsPartialResults(t *testing.T) {
	site := browsertest.NewSite().
		Serve(ListingURL(testBaseURL, "india", 1), listingPage(
			card{title: "First", exp: "Fresher"},
			card{title: "Second", exp: "Fresher"},
		)).
		Serve(ListingURL(testBaseURL, "india", 2), listingPage(
			card{title: "Never", exp: "Fresher"},
		))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clock := func() time.Time {
		cancel()
		return time.Now()
	}

	s := newTestScraper(t, []string{"india"}, 2, WithClock(clock))
	res, err := s.Scrape(ctx, site)

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Len(t, res.Jobs, 2, "cards on the page in progress are finished")
	assert.Equal(t, 0, site.Visits(ListingURL(testBaseURL, "india", 2)))
	assert.Equal(t, 1, site.SessionsClosed())
}
