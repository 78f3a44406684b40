// Package idgen allocates short, prefixed, process-unique identifiers for
// background tasks (prefixes 'b' and 'a') and teammates (prefix 't').
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Allocator hands out IDs of the form <prefix><counter>-<suffix>. The counter
// gives readable, roughly-ordered IDs within a run; the UUID suffix makes
// collisions across independently-created allocators (e.g. a restarted
// manager) effectively impossible without requiring any shared state.
type Allocator struct {
	mu       sync.Mutex
	counters map[byte]uint64
}

// NewAllocator returns a ready-to-use Allocator.
func NewAllocator() *Allocator {
	return &Allocator{counters: make(map[byte]uint64)}
}

// Next returns a fresh ID stamped with prefix. prefix should be one of
// 'b' (shell task), 'a' (sub-agent task), or 't' (teammate).
func (a *Allocator) Next(prefix byte) string {
	a.mu.Lock()
	a.counters[prefix]++
	n := a.counters[prefix]
	a.mu.Unlock()

	suffix := uuid.New().String()
	return fmt.Sprintf("%c%d-%s", prefix, n, suffix[:8])
}
