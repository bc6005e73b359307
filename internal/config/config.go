// Load envs from .env
// Load YAML config
// Apply env overrides and defaults
// Validate config

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

const (
	DriverPlaywright = "playwright"
	DriverStatic     = "static"
)

type Config struct {
	//Search criteria
	Locations []string `yaml:"locations"`
	MaxPages  int      `yaml:"max_pages"`
	BaseURL   string   `yaml:"base_url"`
	Source    string   `yaml:"source"`

	//Paths
	SnapshotPath  string `yaml:"snapshot_path"`
	CachePath     string `yaml:"cache_path"`
	ScreenshotDir string `yaml:"screenshot_dir"`

	DatabaseURL string `yaml:"database_url"`
	Debug       bool   `yaml:"debug"`

	Browser  BrowserConfig  `yaml:"browser"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
	Telegram TelegramConfig `yaml:"telegram"`
	Server   ServerConfig   `yaml:"server"`
}

type BrowserConfig struct {
	Driver    string `yaml:"driver"`
	Headed    bool   `yaml:"headed"`
	SlowMoMs  int    `yaml:"slow_mo_ms"`
	UserAgent string `yaml:"user_agent"`
}

type TimeoutConfig struct {
	Page        time.Duration `yaml:"page"`
	ListingWait time.Duration `yaml:"listing_wait"`
	Detail      time.Duration `yaml:"detail"`
	SkillWait   time.Duration `yaml:"skill_wait"`
}

type TelegramConfig struct {
	Token       string        `yaml:"token"`
	ChatID      int64         `yaml:"chat_id"`
	MinInterval time.Duration `yaml:"min_interval"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// Enabled reports whether notifications should be sent.
func (t TelegramConfig) Enabled() bool {
	return t.Token != ""
}

// Load reads .env, then the YAML file at path (CONFIG_PATH or DefaultPath
// when path is empty), then env overrides, then fills defaults and validates.
// A missing YAML file is not an error; defaults and env cover everything.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		//run on defaults
	default:
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.DatabaseURL = url
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.Telegram.Token = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = id
	}

	if locations := os.Getenv("SCRAPER_LOCATIONS"); locations != "" {
		c.Locations = splitList(locations)
	}

	if maxPages := os.Getenv("SCRAPER_MAX_PAGES"); maxPages != "" {
		n, err := strconv.Atoi(maxPages)
		if err != nil {
			return fmt.Errorf("invalid SCRAPER_MAX_PAGES: %w", err)
		}
		c.MaxPages = n
	}

	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	return nil
}

func (c *Config) applyDefaults() {
	if len(c.Locations) == 0 {
		c.Locations = []string{"india", "remote"}
	}
	if c.MaxPages == 0 {
		c.MaxPages = 3
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://www.naukri.com"
	}
	if c.Source == "" {
		c.Source = "Naukri"
	}
	if c.SnapshotPath == "" {
		c.SnapshotPath = "data/naukri_jobs.json"
	}
	if c.CachePath == "" {
		c.CachePath = ".cache"
	}

	if c.Browser.Driver == "" {
		c.Browser.Driver = DriverPlaywright
	}
	if c.Browser.UserAgent == "" {
		c.Browser.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	}

	if c.Timeouts.Page == 0 {
		c.Timeouts.Page = 20 * time.Second
	}
	if c.Timeouts.ListingWait == 0 {
		c.Timeouts.ListingWait = 20 * time.Second
	}
	if c.Timeouts.Detail == 0 {
		c.Timeouts.Detail = 15 * time.Second
	}
	if c.Timeouts.SkillWait == 0 {
		c.Timeouts.SkillWait = 10 * time.Second
	}

	if c.Telegram.MinInterval == 0 {
		c.Telegram.MinInterval = time.Second
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Locations) == 0 {
		errs = append(errs, errors.New("at least one location is required"))
	}
	for _, loc := range c.Locations {
		if strings.TrimSpace(loc) == "" {
			errs = append(errs, errors.New("locations must not be blank"))
			break
		}
	}
	if c.MaxPages < 1 {
		errs = append(errs, fmt.Errorf("max_pages must be at least 1, got %d", c.MaxPages))
	}
	if c.BaseURL == "" {
		errs = append(errs, errors.New("base_url is required"))
	}
	if c.SnapshotPath == "" {
		errs = append(errs, errors.New("snapshot_path is required"))
	}

	switch c.Browser.Driver {
	case DriverPlaywright, DriverStatic:
	default:
		errs = append(errs, fmt.Errorf("unknown browser driver %q", c.Browser.Driver))
	}
	if c.Browser.SlowMoMs < 0 {
		errs = append(errs, errors.New("browser.slow_mo_ms must not be negative"))
	}

	timeouts := map[string]time.Duration{
		"page":         c.Timeouts.Page,
		"listing_wait": c.Timeouts.ListingWait,
		"detail":       c.Timeouts.Detail,
		"skill_wait":   c.Timeouts.SkillWait,
	}
	for _, name := range []string{"page", "listing_wait", "detail", "skill_wait"} {
		if timeouts[name] <= 0 {
			errs = append(errs, fmt.Errorf("timeouts.%s must be positive", name))
		}
	}

	if c.Telegram.Enabled() && c.Telegram.ChatID == 0 {
		errs = append(errs, errors.New("TELEGRAM_CHAT_ID is required when a bot token is set"))
	}
	if c.Telegram.MinInterval < 0 {
		errs = append(errs, errors.New("telegram.min_interval must not be negative"))
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
