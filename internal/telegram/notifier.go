package telegram

import (
	"context"
	"fmt"
	"time"

	"go-jobscout/internal/models"
	"go-jobscout/internal/scraper"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sender delivers messages to a chat. *Bot implements it.
type Sender interface {
	SendJob(job models.JobPosting) error
	SendStatus(message string) error
}

// SeenCache remembers postings that were already sent.
type SeenCache interface {
	Unseen(keys []string) []string
	Add(keys []string) error
}

// Notifier sends postings not seen in earlier runs, paced by a limiter,
// followed by a summary of the run.
type Notifier struct {
	sender  Sender
	cache   SeenCache
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewNotifier paces sends at one per interval. Telegram answers 429 when
// a bot posts to one chat faster than about once a second.
func NewNotifier(sender Sender, cache SeenCache, interval time.Duration, logger *zap.Logger) *Notifier {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Notifier{
		sender:  sender,
		cache:   cache,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Report is what Notify did.
type Report struct {
	Unseen int
	Sent   int
	Failed int
}

// Notify sends every unseen posting and then a status line built from stats.
// Only postings that were actually delivered are marked as seen.
func (n *Notifier) Notify(ctx context.Context, runID string, jobs []models.JobPosting, stats scraper.Stats) (Report, error) {
	byKey := make(map[string]models.JobPosting, len(jobs))
	keys := make([]string, 0, len(jobs))
	for _, job := range jobs {
		key := job.Key()
		if _, dup := byKey[key]; dup {
			continue
		}
		byKey[key] = job
		keys = append(keys, key)
	}

	unseen := n.cache.Unseen(keys)
	report := Report{Unseen: len(unseen)}
	n.logger.Info(fmt.Sprintf("🔍 Deduplication: %d total -> %d unseen jobs", len(jobs), len(unseen)))

	sent := make([]string, 0, len(unseen))
	for i, key := range unseen {
		if err := n.limiter.Wait(ctx); err != nil {
			n.remember(sent)
			report.Sent = len(sent)
			return report, err
		}

		job := byKey[key]
		n.logger.Info(fmt.Sprintf("  [%d/%d] %s @ %s", i+1, len(unseen), models.Deref(job.Title), models.Deref(job.Company)))
		if err := n.sender.SendJob(job); err != nil {
			report.Failed++
			n.logger.Warn("⚠️ Failed to send job to Telegram", zap.String("key", key), zap.Error(err))
			continue
		}
		sent = append(sent, key)
	}
	n.remember(sent)
	report.Sent = len(sent)

	if err := n.limiter.Wait(ctx); err != nil {
		return report, err
	}
	status := fmt.Sprintf("✅ Run %s: %d new jobs, sent %d.\n%s", runID, report.Unseen, report.Sent, stats.Summary())
	if err := n.sender.SendStatus(status); err != nil {
		n.logger.Warn("⚠️ Failed to send status message", zap.Error(err))
	}
	return report, nil
}

func (n *Notifier) remember(keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := n.cache.Add(keys); err != nil {
		n.logger.Warn("⚠️ Failed to save seen jobs", zap.Error(err))
		return
	}
	n.logger.Info(fmt.Sprintf("💾 Marked %d jobs as seen", len(keys)))
}
