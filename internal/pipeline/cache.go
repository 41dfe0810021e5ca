package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/reshape"
)

type cacheEntry struct {
	datasetID string
	value     any
	expiresAt time.Time
}

// viewCache memoises derived views per dataset. Datasets are immutable, so an
// entry stays valid until it expires or another dataset becomes active.
// A nil *viewCache is a valid, always-missing cache.
type viewCache struct {
	mu     sync.RWMutex
	store  map[string]*cacheEntry
	active string
	ttl    time.Duration
	now    func() time.Time
}

func newViewCache(ttl time.Duration) *viewCache {
	if ttl <= 0 {
		return nil
	}
	return &viewCache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *viewCache) get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (c *viewCache) set(key, datasetID string, value any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// Views of a dataset that is no longer active are not stored.
	if c.active != "" && datasetID != c.active {
		return
	}

	now := c.now()
	for k, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, k)
		}
	}
	c.store[key] = &cacheEntry{datasetID: datasetID, value: value, expiresAt: now.Add(c.ttl)}
}

// retain drops every entry that does not belong to datasetID and refuses
// entries for any other dataset from then on.
func (c *viewCache) retain(datasetID string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = datasetID
	for k, e := range c.store {
		if e.datasetID != datasetID {
			delete(c.store, k)
		}
	}
}

func (c *viewCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// viewKey builds a deterministic key from the view inputs.
func viewKey(view, datasetID string, w model.TimeWindow, sel reshape.Selection) string {
	keyStr := fmt.Sprintf("%s:%s:%d:%d:%s:%s",
		view,
		datasetID,
		w.Start.UnixNano(),
		w.End.UnixNano(),
		joinVars(sel.Primary),
		joinVars(sel.Secondary),
	)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}

func joinVars(vs []model.Variable) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, "|")
}
