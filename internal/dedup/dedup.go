package dedup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTTL is how long a notified posting is remembered.
const DefaultTTL = 30 * 24 * time.Hour

const cacheFile = "seen_jobs.json"

type seenEntry struct {
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
}

// JobCache remembers which postings were already notified, across runs.
// Entries older than the TTL are dropped when the cache is loaded.
type JobCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewJobCache creates or loads the cache stored in cacheDir.
func NewJobCache(cacheDir string, logger *zap.Logger) *JobCache {
	return newJobCache(cacheDir, DefaultTTL, time.Now, logger)
}

func newJobCache(cacheDir string, ttl time.Duration, now func() time.Time, logger *zap.Logger) *JobCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		logger.Warn("⚠️ Failed to create cache directory", zap.Error(err))
	}
	cache := &JobCache{
		filePath: filepath.Join(cacheDir, cacheFile),
		seen:     make(map[string]int64),
		ttl:      ttl,
		now:      now,
		logger:   logger,
	}
	cache.load()
	return cache
}

// IsSeen checks if a posting key has already been notified.
func (jc *JobCache) IsSeen(key string) bool {
	jc.mu.Lock()
	defer jc.mu.Unlock()
	_, exists := jc.seen[key]
	return exists
}

// Unseen filters keys down to the ones not in the cache, keeping order and
// dropping repeats within keys.
func (jc *JobCache) Unseen(keys []string) []string {
	jc.mu.Lock()
	defer jc.mu.Unlock()

	out := make([]string, 0, len(keys))
	batch := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, exists := jc.seen[k]; exists || batch[k] {
			continue
		}
		batch[k] = true
		out = append(out, k)
	}
	return out
}

// Add marks keys as seen and saves the cache when anything changed.
func (jc *JobCache) Add(keys []string) error {
	jc.mu.Lock()
	defer jc.mu.Unlock()

	now := jc.now().UnixMilli()
	changed := false
	for _, key := range keys {
		if _, exists := jc.seen[key]; !exists {
			jc.seen[key] = now
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return jc.save()
}

func (jc *JobCache) Len() int {
	jc.mu.Lock()
	defer jc.mu.Unlock()
	return len(jc.seen)
}

// load reads the cache from disk, skipping expired entries.
func (jc *JobCache) load() {
	data, err := os.ReadFile(jc.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			jc.logger.Warn("⚠️ Failed to read seen jobs cache", zap.String("path", jc.filePath), zap.Error(err))
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		jc.logger.Warn("⚠️ Failed to parse seen jobs cache", zap.String("path", jc.filePath), zap.Error(err))
		return
	}

	cutoff := jc.now().Add(-jc.ttl).UnixMilli()
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			jc.seen[e.Key] = e.Timestamp
			loaded++
		}
	}
	jc.logger.Info(fmt.Sprintf("📋 Loaded %d previously seen jobs (%d expired and removed)", loaded, len(entries)-loaded))
}

// save writes the current cache to disk. Callers hold mu.
func (jc *JobCache) save() error {
	entries := make([]seenEntry, 0, len(jc.seen))
	for key, ts := range jc.seen {
		entries = append(entries, seenEntry{Key: key, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal seen jobs: %w", err)
	}
	if err := os.WriteFile(jc.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", jc.filePath, err)
	}
	jc.logger.Debug(fmt.Sprintf("💾 Saved %d seen jobs to cache", len(entries)))
	return nil
}
