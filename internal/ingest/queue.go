// Package ingest carries records from any number of producer goroutines to
// the single consumer that owns the viewer state. Producers never block:
// the queue is bounded only by memory and a pump goroutine forwards
// messages to the consumer in arrival order.
package ingest

import (
	"bytes"
	"context"
	"io"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"pkt.systems/pslog"
)

// Trace is one record with its routing decision. Routed false means the
// record was filtered out and Text is ignored.
type Trace struct {
	Name   string
	Routed bool
	Text   []byte
}

// Sender receives messages on the consumer side. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Stats counts queue traffic.
type Stats struct {
	Pushed    uint64
	Delivered uint64
	Dropped   uint64
}

// Queue is an unbounded, ordered, multi-producer queue.
type Queue struct {
	mu      sync.Mutex
	pending []tea.Msg
	wake    chan struct{}

	pushed    atomic.Uint64
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// NewQueue returns an empty queue. Messages pushed before Run starts are
// held until it does.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Push enqueues msg without blocking.
func (q *Queue) Push(msg tea.Msg) {
	q.mu.Lock()
	q.pending = append(q.pending, msg)
	q.mu.Unlock()
	q.pushed.Add(1)

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// AppendLine enqueues text for the channel called name.
func (q *Queue) AppendLine(name string, text []byte) {
	q.Push(Trace{Name: name, Routed: true, Text: text})
}

// Drop records a filtered record. It still travels through the queue so the
// consumer sees decisions in the order they were made.
func (q *Queue) Drop() {
	q.dropped.Add(1)
	q.Push(Trace{})
}

// Writer returns an io.Writer that turns every Write into one record for the
// channel called name.
func (q *Queue) Writer(name string) io.Writer {
	return channelWriter{queue: q, name: name}
}

// Len returns the number of messages waiting for the consumer.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Stats returns a snapshot of the counters.
func (q *Queue) Stats() Stats {
	return Stats{
		Pushed:    q.pushed.Load(),
		Delivered: q.delivered.Load(),
		Dropped:   q.dropped.Load(),
	}
}

// Run forwards queued messages to sink until ctx is cancelled. It must run
// on exactly one goroutine.
func (q *Queue) Run(ctx context.Context, sink Sender) error {
	log := pslog.Ctx(ctx)
	log.Debug("ingest pump started")
	defer func() {
		log.Debug("ingest pump stopped", "delivered", q.delivered.Load(), "pending", q.Len())
	}()

	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		for i, msg := range batch {
			if ctx.Err() != nil {
				q.requeue(batch[i:])
				return ctx.Err()
			}
			sink.Send(msg)
			q.delivered.Add(1)
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
		}
	}
}

// requeue puts undelivered messages back in front of anything pushed since.
func (q *Queue) requeue(msgs []tea.Msg) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(append([]tea.Msg{}, msgs...), q.pending...)
}

type channelWriter struct {
	queue *Queue
	name  string
}

func (w channelWriter) Write(p []byte) (int, error) {
	w.queue.AppendLine(w.name, bytes.Clone(p))
	return len(p), nil
}
