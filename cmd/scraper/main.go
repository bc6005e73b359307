package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobscout/internal/browser"
	"go-jobscout/internal/config"
	"go-jobscout/internal/dedup"
	"go-jobscout/internal/logging"
	"go-jobscout/internal/scraper"
	"go-jobscout/internal/scraper/naukri"
	"go-jobscout/internal/storage"
	"go-jobscout/internal/telegram"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default $CONFIG_PATH or configs/config.yaml)")
	flag.Parse()

	//load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))
	logger.Info("🔧 Config loaded",
		zap.Strings("locations", cfg.Locations),
		zap.Int("max_pages", cfg.MaxPages),
		zap.String("driver", cfg.Browser.Driver),
	)

	if err := run(cfg, runID, logger); err != nil {
		logger.Error("❌ Run failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("🏁 Execution finished.")
}

func run(cfg *config.Config, runID string, logger *zap.Logger) error {
	//stop the crawl on Ctrl+C, keeping what was collected
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("🚀 Starting JobScout...")

	s := naukri.NewScraper(naukri.Config{
		BaseURL:            cfg.BaseURL,
		Source:             cfg.Source,
		Locations:          cfg.Locations,
		MaxPages:           cfg.MaxPages,
		PageTimeout:        cfg.Timeouts.Page,
		ListingWaitTimeout: cfg.Timeouts.ListingWait,
		DetailTimeout:      cfg.Timeouts.Detail,
		SkillWaitTimeout:   cfg.Timeouts.SkillWait,
	}, logger, naukri.WithScreenshots(browser.NewScreenshotDebugger(cfg.ScreenshotDir, logger)))

	result, scrapeErr := s.Scrape(ctx, newLauncher(cfg))
	if result == nil {
		return fmt.Errorf("scraper %s: %w", s.Name(), scrapeErr)
	}
	if scrapeErr != nil {
		logger.Warn("⚠️ Scrape stopped early, saving partial results", zap.Error(scrapeErr))
	}
	logger.Info(fmt.Sprintf("📦 Total jobs collected: %d", len(result.Jobs)), zap.String("summary", result.Stats.Summary()))

	//persistence must finish even after an interrupt
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Minute)
	defer cancel()

	if err := persist(persistCtx, cfg, result, logger); err != nil {
		return err
	}

	notify(persistCtx, cfg, runID, result, logger)
	return nil
}

func newLauncher(cfg *config.Config) browser.Launcher {
	if cfg.Browser.Driver == config.DriverStatic {
		return browser.NewStaticLauncher(browser.StaticOptions{UserAgent: cfg.Browser.UserAgent})
	}
	return browser.NewPlaywrightLauncher(browser.PlaywrightOptions{
		Headless:  !cfg.Browser.Headed,
		SlowMo:    time.Duration(cfg.Browser.SlowMoMs) * time.Millisecond,
		UserAgent: cfg.Browser.UserAgent,
	})
}

func persist(ctx context.Context, cfg *config.Config, result *scraper.Result, logger *zap.Logger) error {
	var store storage.JobStore
	if cfg.DatabaseURL != "" {
		pg, err := storage.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			//the snapshot is still written below
			logger.Error("❌ Failed to connect to database", zap.Error(err))
			if err := storage.WriteSnapshot(cfg.SnapshotPath, result.Jobs); err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}
			return fmt.Errorf("database: %w", err)
		}
		defer pg.Close()
		store = pg
	}

	return storage.NewPersister(cfg.SnapshotPath, store, logger).Persist(ctx, result.Jobs)
}

func notify(ctx context.Context, cfg *config.Config, runID string, result *scraper.Result, logger *zap.Logger) {
	if !cfg.Telegram.Enabled() {
		logger.Info("🤖 Telegram not configured, skipping notifications")
		return
	}

	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		logger.Warn("⚠️ Failed to init Telegram Bot", zap.Error(err))
		return
	}

	cache := dedup.NewJobCache(cfg.CachePath, logger)
	notifier := telegram.NewNotifier(bot, cache, cfg.Telegram.MinInterval, logger)
	report, err := notifier.Notify(ctx, runID, result.Jobs, result.Stats)
	if err != nil {
		logger.Warn("⚠️ Notifications interrupted", zap.Error(err))
	}
	logger.Info(fmt.Sprintf("📊 Sent %d/%d new jobs to Telegram", report.Sent, report.Unseen))
}
