package storage

import (
	"context"
	"fmt"

	"go-jobscout/internal/models"

	"go.uber.org/zap"
)

// JobStore is the relational side of persistence.
type JobStore interface {
	InsertJobs(ctx context.Context, jobs []models.JobPosting) error
}

// Persister writes a run's postings to the JSON snapshot and, when a store
// is configured, appends them to the jobs table.
type Persister struct {
	snapshotPath string
	store        JobStore
	logger       *zap.Logger
}

// NewPersister builds a persister. A nil store means snapshot-only mode.
func NewPersister(snapshotPath string, store JobStore, logger *zap.Logger) *Persister {
	return &Persister{
		snapshotPath: snapshotPath,
		store:        store,
		logger:       logger,
	}
}

// Persist always writes the snapshot first. A store failure is returned
// after the snapshot is on disk.
func (p *Persister) Persist(ctx context.Context, jobs []models.JobPosting) error {
	if err := WriteSnapshot(p.snapshotPath, jobs); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	p.logger.Info(fmt.Sprintf("💾 Saved %d jobs to %s", len(jobs), p.snapshotPath))

	if p.store == nil {
		p.logger.Info("🗄️ No database configured, skipping row insert")
		return nil
	}

	if err := p.store.InsertJobs(ctx, jobs); err != nil {
		p.logger.Error("❌ Failed to insert jobs", zap.Error(err))
		return fmt.Errorf("store: %w", err)
	}
	p.logger.Info(fmt.Sprintf("🗄️ Inserted %d rows into jobs", len(jobs)))
	return nil
}
