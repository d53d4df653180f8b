package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator generates run ids from a counter.
//
// The same sequence of calls produces the same ids, which keeps stored runs
// and golden output stable. Ids sort lexically in generation order.
//
// Thread-safety: all methods are safe for concurrent use.
type FixedIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewFixedIDGenerator creates a generator. If prefix is empty "run" is used.
//
// The first call to Generate returns "<prefix>-0001".
func NewFixedIDGenerator(prefix string) *FixedIDGenerator {
	if prefix == "" {
		prefix = "run"
	}
	return &FixedIDGenerator{prefix: prefix}
}

// Generate returns the next id.
//
// Implements store.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Reset restarts the counter so the next id is "<prefix>-0001" again.
func (g *FixedIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}
