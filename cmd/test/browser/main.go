package main

import (
	"context"
	"fmt"
	"log"

	"go-jobscout/internal/browser"
	"go-jobscout/internal/config"
	"go-jobscout/internal/scraper/naukri"

	"go.uber.org/zap"
)

// Opens the first listing page of the first configured location and reports
// which selector variants match, to check the selector table against the live site.
func main() {
	fmt.Println("🌐 Testing browser driver...")

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	var launcher browser.Launcher = browser.NewPlaywrightLauncher(browser.PlaywrightOptions{
		Headless:  !cfg.Browser.Headed,
		UserAgent: cfg.Browser.UserAgent,
	})
	if cfg.Browser.Driver == config.DriverStatic {
		launcher = browser.NewStaticLauncher(browser.StaticOptions{UserAgent: cfg.Browser.UserAgent})
	}

	session, err := launcher.Launch(context.Background())
	if err != nil {
		log.Fatalf("Failed to launch %s browser: %v", cfg.Browser.Driver, err)
	}
	defer session.Close()
	fmt.Printf("✅ %s browser started\n", cfg.Browser.Driver)

	page, err := session.NewPage()
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}
	defer page.Close()

	url := naukri.ListingURL(cfg.BaseURL, cfg.Locations[0], 1)
	fmt.Printf("🔍 Navigating to %s...\n", url)
	if out := page.Navigate(url, cfg.Timeouts.Page); !out.OK() {
		log.Fatalf("Failed to navigate (%s): %v", out.Status, out.Err)
	}

	selectors := naukri.DefaultSelectors()
	if out := page.WaitForSelector(selectors.ListingReady(), cfg.Timeouts.ListingWait); !out.OK() {
		fmt.Printf("⚠️ Listing container not found (%s): %v\n", out.Status, out.Err)
	}

	for _, sel := range selectors.JobCard {
		cards, err := page.QueryAll(sel)
		if err != nil {
			fmt.Printf("   %-40s error: %v\n", sel, err)
			continue
		}
		fmt.Printf("   %-40s %d cards\n", sel, len(cards))
	}

	shots := browser.NewScreenshotDebugger(".", zap.NewNop())
	if path, err := shots.CaptureAndLog(page, "browser-test", "browser test"); err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	} else if path != "" {
		fmt.Printf("📸 Screenshot saved: %s\n", path)
	}

	fmt.Println("✨ Test complete!")
}
