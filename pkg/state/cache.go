package state

import (
	"sync"

	"github.com/mwestveld/newscanvas/pkg/geom"
)

// PositionCache is the shared mutable position buffer between the store and
// an external physics integrator. The integrator writes interpolated
// positions once per frame; the renderer reads them without touching the
// store. Cache and canonical state are allowed to diverge only while an
// animation or drag is in flight; Reconcile folds the cached positions back
// into the store and empties the cache, and is called on drag-end and on
// layout-apply, never per frame.
//
// The cache carries its own lock because the integrator runs off the UI
// thread; the store itself stays single-writer.
type PositionCache struct {
	mu  sync.RWMutex
	pos map[string]geom.Vec3
}

// NewPositionCache returns an empty cache.
func NewPositionCache() *PositionCache {
	return &PositionCache{pos: make(map[string]geom.Vec3)}
}

// Set records an interpolated position for a node.
func (c *PositionCache) Set(id string, p geom.Vec3) {
	c.mu.Lock()
	c.pos[id] = p
	c.mu.Unlock()
}

// Get returns the cached position for a node, if any.
func (c *PositionCache) Get(id string) (geom.Vec3, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.pos[id]
	return p, ok
}

// Len returns the number of cached entries.
func (c *PositionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pos)
}

// Drop removes a single entry, used when a node is removed mid-animation.
func (c *PositionCache) Drop(id string) {
	c.mu.Lock()
	delete(c.pos, id)
	c.mu.Unlock()
}

// Reconcile moves every cached position into the store as canonical state
// and empties the cache. After reconciliation the store and renderer agree
// again.
func (c *PositionCache) Reconcile(st *Store) {
	c.mu.Lock()
	pending := c.pos
	c.pos = make(map[string]geom.Vec3)
	c.mu.Unlock()

	for id, p := range pending {
		st.MoveNode(id, p)
	}
}
