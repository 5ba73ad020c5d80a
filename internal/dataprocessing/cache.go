package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"salesdash/pkg/contracts/domain"
)

// DatasetCache is a read-through cache of parsed workbooks. Entries are
// keyed by file path and validated against the file's modification time and
// size, so editing the workbook in place invalidates the cached dataset on
// the next load. Concurrent loads of the same path are collapsed into a
// single parse.
type DatasetCache struct {
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]*cacheEntry

	group singleflight.Group

	hitCount  int64
	missCount int64
}

type cacheEntry struct {
	dataset *domain.Dataset
	modTime time.Time
	size    int64
}

// NewDatasetCache creates an empty dataset cache.
func NewDatasetCache(logger *slog.Logger) *DatasetCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetCache{
		logger:  logger.With(slog.String("component", "dataset_cache")),
		entries: make(map[string]*cacheEntry),
	}
}

// Load returns the dataset for path, parsing the workbook only when no
// fresh cached copy exists. A load failure is returned to the caller and
// nothing is cached for that path.
func (c *DatasetCache) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat workbook: %w", err)
	}

	if ds := c.lookup(path, info.ModTime(), info.Size()); ds != nil {
		return ds, nil
	}

	result, err, _ := c.group.Do(path, func() (interface{}, error) {
		// Re-check under singleflight: another caller may have finished
		// the parse while this one waited.
		if ds := c.lookup(path, info.ModTime(), info.Size()); ds != nil {
			return ds, nil
		}

		c.logger.InfoContext(ctx, "loading workbook",
			slog.String("path", path),
			slog.Int64("size_bytes", info.Size()))

		ds, err := ParseWorkbook(path)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[path] = &cacheEntry{
			dataset: ds,
			modTime: info.ModTime(),
			size:    info.Size(),
		}
		c.mu.Unlock()

		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Dataset), nil
}

// lookup returns the cached dataset when it matches the current file
// identity, updating hit/miss counters.
func (c *DatasetCache) lookup(path string, modTime time.Time, size int64) *domain.Dataset {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok || !entry.modTime.Equal(modTime) || entry.size != size {
		c.missCount++
		return nil
	}
	c.hitCount++
	return entry.dataset
}

// Invalidate drops the cached dataset for path, forcing the next Load to
// re-parse the workbook.
func (c *DatasetCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Stats reports cache effectiveness for observability endpoints.
func (c *DatasetCache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hitCount + c.missCount
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(c.hitCount) / float64(total)
	}

	return map[string]interface{}{
		"entries":    len(c.entries),
		"hit_count":  c.hitCount,
		"miss_count": c.missCount,
		"hit_ratio":  hitRatio,
	}
}
