package mock

import (
	"sync"
	"sync/atomic"
	"time"

	"shuttle/internal/logging"
	"shuttle/transport"
)

// Consumer lifecycle states; transitions are linear, no cycles.
const (
	StateNotStarted int32 = iota
	StatePolling
	StateStopping
	StateStopped
)

// Consumer owns the poll loop and the deserializing output stream.
type Consumer struct {
	out      chan transport.Message
	interval time.Duration
	poller   *poller

	state     atomic.Int32
	running   atomic.Bool // continue flag: single writer, flips true→false once
	started   chan struct{}
	startOnce sync.Once
	stop      chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
}

func newConsumer(driver transport.Driver, topics transport.TopicMap, serdes transport.SerdeMap, cfg Config) *Consumer {
	c := &Consumer{
		out:      make(chan transport.Message, cfg.Capacity),
		interval: cfg.PollInterval,
		poller:   &poller{driver: driver, topics: topics, serdes: serdes},
		started:  make(chan struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	c.running.Store(true)
	return c
}

// run is the poll loop. It resolves the started signal on the first
// iteration, polls once per interval, and closes the stream on the way
// out. Stop requests are observed at loop boundaries only, so stop
// latency is bounded by one poll interval.
func (c *Consumer) run() {
	defer close(c.done)
	defer close(c.out)
	defer c.state.Store(StateStopped)

	for c.running.Load() {
		c.startOnce.Do(func() {
			c.state.Store(StatePolling)
			close(c.started)
		})
		c.poller.poll(c)
		select {
		case <-time.After(c.interval):
		case <-c.stop:
		}
	}
	logging.L().Debug("mock consumer: poll loop exiting")
}

// Messages is the deserialized output stream; closed after Stop once
// the loop winds down.
func (c *Consumer) Messages() <-chan transport.Message { return c.out }

// Started resolves once the poll loop has begun.
func (c *Consumer) Started() <-chan struct{} { return c.started }

// Done resolves when the loop has terminated and the stream is closed.
func (c *Consumer) Done() <-chan struct{} { return c.done }

// State reports the current lifecycle phase.
func (c *Consumer) State() int32 { return c.state.Load() }

// Stop requests cooperative shutdown; the loop observes it at the next
// boundary. Idempotent.
func (c *Consumer) Stop() {
	c.stopOnce.Do(func() {
		c.state.Store(StateStopping)
		c.running.Store(false)
		close(c.stop)
	})
}

// push enqueues one message, abandoning the attempt when shutdown is
// requested so a saturated stream cannot wedge the loop.
func (c *Consumer) push(m transport.Message) bool {
	select {
	case c.out <- m:
		return true
	case <-c.stop:
		return false
	}
}
