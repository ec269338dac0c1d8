package planner

import (
	"sync"
	"time"

	"mcnutrition/src/domain"
)

// Draft represents the locally cached backup copy of a planner. It is
// consulted only when no server record exists for the identity and the
// timestamp is recent enough.
type Draft struct {
	Entries   []domain.PlannerEntry
	MealName  string
	Timestamp time.Time
}

// DraftCache stores the most recent draft per identity key.
type DraftCache interface {
	Put(key string, draft Draft)
	Get(key string) (Draft, bool)
}

type memoryDraftCache struct {
	mu     sync.RWMutex
	drafts map[string]Draft
}

// NewMemoryDraftCache creates an in-process draft cache.
func NewMemoryDraftCache() DraftCache {
	return &memoryDraftCache{drafts: make(map[string]Draft)}
}

func (c *memoryDraftCache) Put(key string, draft Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts[key] = draft
}

func (c *memoryDraftCache) Get(key string) (Draft, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.drafts[key]
	return d, ok
}
