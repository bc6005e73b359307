package main

import (
	"fmt"
	"log"

	"go-jobscout/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("❌ Config invalid: %v", err)
	}
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Locations: %v (max %d pages)\n", cfg.Locations, cfg.MaxPages)
	fmt.Printf("   Base URL: %s\n", cfg.BaseURL)
	fmt.Printf("   Driver: %s (headed: %v)\n", cfg.Browser.Driver, cfg.Browser.Headed)
	fmt.Printf("   Timeouts: page %s, listing %s, detail %s, skills %s\n",
		cfg.Timeouts.Page, cfg.Timeouts.ListingWait, cfg.Timeouts.Detail, cfg.Timeouts.SkillWait)
	fmt.Printf("   Snapshot: %s\n", cfg.SnapshotPath)
	fmt.Printf("   Database: %v\n", cfg.DatabaseURL != "")
	fmt.Printf("   Telegram: %v (chat %d)\n", cfg.Telegram.Enabled(), cfg.Telegram.ChatID)
}
