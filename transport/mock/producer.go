package mock

import (
	"context"
	"fmt"
	"sync"

	"shuttle/internal/telemetry"
	"shuttle/transport"
)

// InjectFunc forwards one record into the driver.
type InjectFunc func(*transport.InputRecord) error

type envelope struct {
	rec *transport.InputRecord
	ack *transport.Ack
	err error // serialization-stage failure, resolved without injection
}

// Producer owns the serializing inbound stream and the drain loop that
// feeds the driver strictly one message at a time.
type Producer struct {
	in     chan *envelope
	inject InjectFunc
	topics transport.TopicMap
	serdes transport.SerdeMap

	mu        sync.RWMutex // guards closed and the close of in against parked senders
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
	drainErr  error // written once by the drain goroutine before done closes
}

func newProducer(inject InjectFunc, topics transport.TopicMap, serdes transport.SerdeMap, cfg Config) *Producer {
	return &Producer{
		in:     make(chan *envelope, cfg.Capacity),
		inject: inject,
		topics: topics,
		serdes: serdes,
		done:   make(chan struct{}),
	}
}

// Send serializes the message, queues it for injection, and returns its
// ack handle. Serialization failures ride along as annotated envelopes
// so the ack still resolves exactly once; only a closed producer or a
// cancelled context fail the call itself. Safe to call concurrently
// with CloseSend: a sender parked on a full stream holds the read lock,
// so the stream cannot close underneath it.
func (p *Producer) Send(ctx context.Context, m transport.Message) (*transport.Ack, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, transport.ErrClosed
	}
	env := &envelope{ack: transport.NewAck()}
	if rec, err := p.encode(m); err != nil {
		env.err = err
	} else {
		env.rec = rec
	}
	select {
	case p.in <- env:
		return env.ack, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Producer) encode(m transport.Message) (*transport.InputRecord, error) {
	sp := p.serdes[m.Topic]
	key, err := encodeField(sp.Key, m.Topic, m.Key)
	if err != nil {
		return nil, &transport.SerdeError{Op: "serialize", Topic: m.Topic, Err: err}
	}
	value, err := encodeField(sp.Value, m.Topic, m.Value)
	if err != nil {
		return nil, &transport.SerdeError{Op: "serialize", Topic: m.Topic, Err: err}
	}
	return transport.ToInputRecord(p.topics, m, key, value)
}

// encodeField falls back to raw bytes when no serializer is bound.
func encodeField(s transport.Serializer, topic string, v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	if s == nil {
		if b, ok := v.([]byte); ok {
			return b, nil
		}
		return nil, fmt.Errorf("no serializer bound for %T", v)
	}
	return s.Serialize(topic, v)
}

// drain processes envelopes strictly one at a time, so injection order
// equals submission order and at most one ack is ever pending.
func (p *Producer) drain() {
	defer close(p.done)
	for env := range p.in {
		switch {
		case env.err != nil:
			env.ack.Resolve(transport.AckResult{Err: env.err})
			telemetry.Acks.WithLabelValues("error").Inc()
		default:
			if err := p.inject(env.rec); err != nil {
				// Fatal to the drain task. Every queued ack still resolves
				// so no waiter leaks, and Wait surfaces the same error.
				env.ack.Resolve(transport.AckResult{Err: err})
				telemetry.Acks.WithLabelValues("error").Inc()
				p.drainErr = err
				p.failQueued(err)
				return
			}
			env.ack.Resolve(transport.AckResult{
				Topic:     env.rec.Topic,
				Partition: env.rec.Partition,
				Offset:    env.rec.Offset,
			})
			telemetry.RecordsInjected.Inc()
			telemetry.Acks.WithLabelValues("ok").Inc()
		}
	}
}

// failQueued consumes the inbound stream until CloseSend, resolving
// every remaining ack with the fatal error.
func (p *Producer) failQueued(err error) {
	for env := range p.in {
		env.ack.Resolve(transport.AckResult{Err: err})
		telemetry.Acks.WithLabelValues("error").Inc()
	}
}

// CloseSend closes the inbound stream; the drain loop finishes whatever
// is queued and terminates. Waits for parked senders to hand over or
// bail out before closing, so none of them hits a closed channel.
// Idempotent.
func (p *Producer) CloseSend() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.in)
		p.mu.Unlock()
	})
}

// Done resolves when the drain loop has terminated.
func (p *Producer) Done() <-chan struct{} { return p.done }

// Wait blocks for drain completion and reports its fatal error, if any.
func (p *Producer) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.drainErr
	case <-ctx.Done():
		return ctx.Err()
	}
}
