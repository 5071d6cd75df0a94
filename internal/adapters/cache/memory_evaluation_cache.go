package cache

import (
	"context"
	"nav-eval-service/internal/domain"
	"sync"
)

// MemoryEvaluationCache is a process-local evaluation cache for tests and
// single-shot tools. Safe for concurrent use.
type MemoryEvaluationCache struct {
	mu      sync.RWMutex
	entries map[string]domain.Evaluation
	// Counts GetMany/PutMany calls, for assertions in tests.
	Gets, Puts int
}

func NewMemoryEvaluationCache() *MemoryEvaluationCache {
	return &MemoryEvaluationCache{entries: make(map[string]domain.Evaluation)}
}

func (c *MemoryEvaluationCache) GetMany(_ context.Context, keys []string) (map[string]domain.Evaluation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++

	out := make(map[string]domain.Evaluation, len(keys))
	for _, k := range uniqueKeys(keys) {
		if e, ok := c.entries[k]; ok {
			out[k] = e
		}
	}
	return out, nil
}

func (c *MemoryEvaluationCache) PutMany(_ context.Context, evals map[string]domain.Evaluation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Puts++

	for k, e := range evals {
		c.entries[k] = e
	}
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryEvaluationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
