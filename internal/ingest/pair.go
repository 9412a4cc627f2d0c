package ingest

import (
	"errors"
	"sync"
)

// ErrOrdering means formatted bytes reached the consumer with no routing
// decision queued ahead of them. Producers raced their decide-then-emit
// steps; every later pairing would be wrong, so callers treat it as fatal.
var ErrOrdering = errors.New("ingest: trace received with no routing decision queued")

// Raw is formatted bytes whose routing decision travels separately through
// a Names FIFO.
type Raw struct {
	Text []byte
}

type decision struct {
	name   string
	routed bool
}

// Names is the routing-decision FIFO for producers that decide a channel
// and emit bytes in two steps. Decide must be called before the matching
// Raw message is pushed, and producers must serialize the two steps.
type Names struct {
	mu   sync.Mutex
	fifo []decision
}

// Decide queues the routing decision for the next Raw message. routed false
// marks the record as dropped.
func (n *Names) Decide(name string, routed bool) {
	n.mu.Lock()
	n.fifo = append(n.fifo, decision{name: name, routed: routed})
	n.mu.Unlock()
}

// Pair pops exactly one decision and joins it with raw.
func (n *Names) Pair(raw Raw) (Trace, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.fifo) == 0 {
		return Trace{}, ErrOrdering
	}
	d := n.fifo[0]
	n.fifo[0] = decision{}
	n.fifo = n.fifo[1:]
	if !d.routed {
		return Trace{}, nil
	}
	return Trace{Name: d.name, Routed: true, Text: raw.Text}, nil
}

// Len returns the number of queued decisions.
func (n *Names) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.fifo)
}
