package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go-jobscout/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		godotenv.Load("../../.env") // Fallback
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set. Please check your .env file.")
	}

	fmt.Println("Attempting to connect to PostgreSQL...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.ConnectPostgres(ctx, dbURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to the database. Error: %v\n(Check your connection string, password, and network access)", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("❌ Could not create jobs table: %v", err)
	}

	count, err := store.CountJobs(ctx)
	if err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}

	fmt.Println("✅ Successfully connected to the database!")
	fmt.Printf("📦 jobs table holds %d rows\n", count)
}
