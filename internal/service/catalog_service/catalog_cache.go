package catalog_service

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/metrics"
)

type catalogSnapshot struct {
	entries  []CatalogEntry
	loadedAt time.Time
}

// catalogCache holds an immutable snapshot of the flattened catalog. The
// snapshot is only ever replaced as a whole, so readers never observe a
// partially built catalog. Two readers that find it stale at the same time
// may both reload, which is harmless since loads are pure.
type catalogCache struct {
	ttl      time.Duration
	load     func() ([]CatalogEntry, error)
	now      func() time.Time
	snapshot atomic.Pointer[catalogSnapshot]
}

func newCatalogCache(ttl time.Duration, load func() ([]CatalogEntry, error)) *catalogCache {
	return &catalogCache{
		ttl:  ttl,
		load: load,
		now:  time.Now,
	}
}

func (c *catalogCache) isStale(now time.Time) bool {
	snap := c.snapshot.Load()
	return snap == nil || now.Sub(snap.loadedAt) >= c.ttl
}

func (c *catalogCache) refresh() (*catalogSnapshot, error) {
	start := time.Now()
	entries, err := c.load()
	metrics.CatalogReloadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogReloads.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.CatalogReloads.WithLabelValues("ok").Inc()

	snap := &catalogSnapshot{entries: entries, loadedAt: c.now()}
	c.snapshot.Store(snap)
	return snap, nil
}

func (c *catalogCache) get() ([]CatalogEntry, error) {
	if !c.isStale(c.now()) {
		return c.snapshot.Load().entries, nil
	}
	snap, err := c.refresh()
	if err != nil {
		return nil, err
	}
	return snap.entries, nil
}

// flattenDataset walks stages, then tiers, then problems in file order and
// keeps the first occurrence of every problem id
func flattenDataset(d *Dataset) []CatalogEntry {
	seen := make(map[ProblemID]struct{})
	entries := make([]CatalogEntry, 0)

	for _, s := range d.stages {
		for _, tierKey := range s.stage.Tiers.keys {
			level := LevelForTier(tierKey)
			for _, p := range s.stage.Tiers.tiers[tierKey].Problems {
				id := MakeProblemID(p.ContestID, p.Index)
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}

				tags := p.Tags
				if tags == nil {
					tags = []string{}
				}
				tagsLower := make([]string, len(tags))
				for i, tag := range tags {
					tagsLower[i] = strings.ToLower(tag)
				}

				entries = append(entries, CatalogEntry{
					ID:        id,
					ContestID: p.ContestID,
					Index:     p.Index,
					Name:      p.Name,
					Rating:    p.Rating,
					Tags:      tags,
					Stage:     s.key,
					Level:     level,
					Status:    StatusUnsolved,
					nameLower: strings.ToLower(p.Name),
					tagsLower: tagsLower,
				})
			}
		}
	}
	return entries
}

func (c *CatalogService) buildCatalog() ([]CatalogEntry, error) {
	dataset, err := c.loadDataset()
	if err != nil {
		return nil, err
	}
	entries := flattenDataset(dataset)
	c.logger.Infof("catalog rebuilt with %d unique problems", len(entries))
	return entries, nil
}

// GetFlattenedCatalog returns the shared, de-duplicated catalog. Callers must
// treat the result as read-only; status is always unsolved here.
func (c *CatalogService) GetFlattenedCatalog() ([]CatalogEntry, error) {
	return c.cache.get()
}
