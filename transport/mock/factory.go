// Package mock simulates a message-queue producer and consumer on top
// of an in-process topology test driver: pull-based synchronous driver
// reads become a push-based asynchronous stream, with serde handling at
// the boundary and per-message one-shot acks.
package mock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"shuttle/internal/logging"
	"shuttle/serde"
	"shuttle/transport"
)

// Transport bundles the mock consumer/producer pair wired over one
// driver, plus the shutdown hooks that unwind them in order.
type Transport struct {
	Consumer *Consumer
	Producer *Producer
	Topics   transport.TopicMap
	Serdes   transport.SerdeMap

	driver    transport.Driver
	closeOnce sync.Once
	closeErr  error
}

// New wires driver, topic config, and serdes into a running transport.
// The producer is only constructed once the consumer's poll loop has
// signalled that it started. A nil serdes map is built from the topic
// config's serde bindings (default "bytes").
func New(ctx context.Context, driver transport.Driver, topics transport.TopicMap, serdes transport.SerdeMap, cfg Config) (*Transport, error) {
	cfg.applyDefaults()
	if serdes == nil {
		var err error
		if serdes, err = buildSerdes(topics); err != nil {
			return nil, err
		}
	}

	consumer := newConsumer(driver, topics, serdes, cfg)
	go consumer.run()
	select {
	case <-consumer.Started():
	case <-ctx.Done():
		consumer.Stop()
		<-consumer.Done()
		return nil, ctx.Err()
	}

	inject := func(rec *transport.InputRecord) error {
		if err := driver.Inject(rec); err != nil {
			logging.L().Error("mock producer: inject failed", "topic", rec.Topic, "err", err)
			return fmt.Errorf("inject %s: %w", rec.Topic, err)
		}
		return nil
	}
	producer := newProducer(inject, topics, serdes, cfg)
	go producer.drain()

	return &Transport{
		Consumer: consumer,
		Producer: producer,
		Topics:   topics,
		Serdes:   serdes,
		driver:   driver,
	}, nil
}

func buildSerdes(topics transport.TopicMap) (transport.SerdeMap, error) {
	m := make(transport.SerdeMap, len(topics))
	for key, tc := range topics {
		pair, err := serdePair(tc)
		if err != nil {
			return nil, fmt.Errorf("topic %s: %w", key, err)
		}
		m[key] = pair
	}
	return m, nil
}

func serdePair(tc transport.TopicConfig) (transport.SerdePair, error) {
	k, err := serde.New(orBytes(tc.KeySerde))
	if err != nil {
		return transport.SerdePair{}, err
	}
	v, err := serde.New(orBytes(tc.ValueSerde))
	if err != nil {
		return transport.SerdePair{}, err
	}
	return transport.SerdePair{Key: k, Value: v}, nil
}

func orBytes(name string) string {
	if name == "" {
		return "bytes"
	}
	return name
}

// Close runs the shutdown sequence: signal (close the driver, close the
// producer's inbound stream, flip the consumer's continue flag), then
// await both loops. Idempotent; later calls return the first result.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		var errs []error
		if err := t.driver.Close(); err != nil {
			errs = append(errs, err)
		}
		t.Producer.CloseSend()
		t.Consumer.Stop()
		if err := t.Producer.Wait(context.Background()); err != nil {
			errs = append(errs, err)
		}
		<-t.Consumer.Done()
		t.closeErr = errors.Join(errs...)
	})
	return t.closeErr
}

// ExitHooks exposes the shutdown sequence as zero-arg hooks for harness
// integration.
func (t *Transport) ExitHooks() []func() error {
	return []func() error{t.Close}
}
