package claim

import (
	"fmt"
	"sync/atomic"
	"time"
)

// NumberGenerator produces claim numbers of the form
// CLM-<14-digit UTC timestamp><4-digit sequence>. The timestamp alone is
// the original numbering scheme; the sequence suffix keeps two claims
// created within the same wall-clock second from colliding. The unique
// index on claims.claim_number remains the final guard across processes.
type NumberGenerator struct {
	seq  atomic.Uint32
	now  func() time.Time
	node int64
}

// NewNumberGenerator seeds the sequence with the node ID so that two
// nodes started in the same instant diverge immediately.
func NewNumberGenerator(node int64) *NumberGenerator {
	g := &NumberGenerator{now: time.Now, node: node}
	g.seq.Store(uint32(node * 101))
	return g
}

// Next returns a fresh claim number.
func (g *NumberGenerator) Next() string {
	ts := g.now().UTC().Format("20060102150405")
	seq := g.seq.Add(1) % 10000
	return fmt.Sprintf("CLM-%s%04d", ts, seq)
}
