package admin

import (
	"sync"
	"time"

	"adminhub/internal/model"
)

// MemoryCache - запасной вариант, когда sqlite-файл недоступен.
// Живет до выхода из процесса.
type MemoryCache struct {
	mu        sync.Mutex
	snapshots map[string][]model.Record
	savedAt   map[string]time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		snapshots: make(map[string][]model.Record),
		savedAt:   make(map[string]time.Time),
	}
}

func (c *MemoryCache) SaveSnapshot(resource string, records []model.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.Record, len(records))
	copy(out, records)
	c.snapshots[resource] = out
	c.savedAt[resource] = time.Now().UTC()
	return nil
}

func (c *MemoryCache) LoadSnapshot(resource string) ([]model.Record, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, ok := c.snapshots[resource]
	if !ok {
		return nil, time.Time{}, nil
	}
	out := make([]model.Record, len(records))
	copy(out, records)
	return out, c.savedAt[resource], nil
}
