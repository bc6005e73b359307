package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-jobscout/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createJobsTable = `
	CREATE TABLE IF NOT EXISTS jobs (
		id BIGSERIAL PRIMARY KEY,
		title TEXT,
		company TEXT,
		skills TEXT,
		location TEXT,
		source TEXT,
		scraped_at TEXT
	)`

const insertJob = `
	INSERT INTO jobs (title, company, skills, location, source, scraped_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// stampLayout matches the scraper's scraped_at format.
const stampLayout = "2006-01-02T15:04:05.000000Z07:00"

// PostgresStore appends postings to the jobs table. Rows are never
// deduplicated; every run adds one row per posting.
type PostgresStore struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func ConnectPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	// Transaction-mode poolers (PgBouncer, Supabase) reject cached prepared statements.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &PostgresStore{db: pool, now: time.Now}, nil
}

func (s *PostgresStore) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// EnsureSchema creates the jobs table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createJobsTable); err != nil {
		return fmt.Errorf("failed to create jobs table: %w", err)
	}
	return nil
}

// InsertJobs writes all postings in one transaction.
func (s *PostgresStore) InsertJobs(ctx context.Context, jobs []models.JobPosting) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	if len(jobs) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, job := range jobs {
		title, company, skills, location, source, scrapedAt := s.row(job)
		batch.Queue(insertJob, title, company, skills, location, source, scrapedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert jobs: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit jobs: %w", err)
	}
	return nil
}

// CountJobs returns the number of rows in the jobs table.
func (s *PostgresStore) CountJobs(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM jobs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) row(job models.JobPosting) (title, company *string, skills, location, source, scrapedAt string) {
	scrapedAt = job.ScrapedAt
	if scrapedAt == "" {
		scrapedAt = s.now().Format(stampLayout)
	}
	return job.Title, job.Company, JoinSkills(job.Skills), job.Location, job.Source, scrapedAt
}

// JoinSkills flattens skills into the comma-separated column value.
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}
