// Package topotest provides an in-memory topology test driver: records
// injected on an input topic run through registered processors and the
// results queue up per output topic for ReadNext.
package topotest

import (
	"fmt"
	"sync"

	"shuttle/transport"
)

// Processor turns one injected record into zero or more output records.
// Returned records with an empty Topic inherit the route's target.
type Processor func(rec *transport.InputRecord) []*transport.OutputRecord

// MapValues builds a one-to-one processor that rewrites only the value.
func MapValues(fn func(value []byte) []byte) Processor {
	return func(rec *transport.InputRecord) []*transport.OutputRecord {
		out := transport.NewOutputRecord("", rec.Key, fn(rec.Value))
		out.Partition = rec.Partition
		return []*transport.OutputRecord{out}
	}
}

type route struct {
	to   string
	proc Processor
}

// Driver implements transport.Driver fully in memory. Single-partition:
// every injected record lands on partition 0 with the next offset for
// its topic.
type Driver struct {
	mu      sync.Mutex
	routes  map[string][]route
	queues  map[string][]*transport.OutputRecord
	offsets map[string]int64
	closed  bool
}

func New() *Driver {
	return &Driver{
		routes:  map[string][]route{},
		queues:  map[string][]*transport.OutputRecord{},
		offsets: map[string]int64{},
	}
}

// Pipe routes records injected on the physical topic from through proc
// and queues the results on to.
func (d *Driver) Pipe(from, to string, proc Processor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.routes[from] = append(d.routes[from], route{to: to, proc: proc})
}

// Seed preloads output records without going through a route.
func (d *Driver) Seed(topic string, recs ...*transport.OutputRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queues[topic] = append(d.queues[topic], recs...)
}

// Inject assigns the record's position in place and runs the routes
// registered for its topic.
func (d *Driver) Inject(rec *transport.InputRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return fmt.Errorf("topotest: inject %s: %w", rec.Topic, transport.ErrClosed)
	}
	rec.Partition = 0
	rec.Offset = d.offsets[rec.Topic]
	d.offsets[rec.Topic]++
	for _, r := range d.routes[rec.Topic] {
		for _, out := range r.proc(rec) {
			if out.Topic == "" {
				out.Topic = r.to
			}
			d.queues[out.Topic] = append(d.queues[out.Topic], out)
		}
	}
	return nil
}

func (d *Driver) ReadNext(topic string) *transport.OutputRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	q := d.queues[topic]
	if len(q) == 0 {
		return nil
	}
	d.queues[topic] = q[1:]
	return q[0]
}

// Close marks the driver closed; further injections fail. Idempotent.
func (d *Driver) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}
