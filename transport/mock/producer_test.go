package mock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"shuttle/transport"
)

// orderedInject records injection order and assigns positions the way a
// single-partition driver would.
type orderedInject struct {
	mu     sync.Mutex
	topics map[string]int64
	order  []string
}

func newOrderedInject() *orderedInject {
	return &orderedInject{topics: map[string]int64{}}
}

func (o *orderedInject) inject(rec *transport.InputRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	rec.Partition = 0
	rec.Offset = o.topics[rec.Topic]
	o.topics[rec.Topic]++
	o.order = append(o.order, string(rec.Value))
	return nil
}

func startProducer(inject InjectFunc, topics transport.TopicMap, serdes transport.SerdeMap) *Producer {
	cfg := testConfig()
	cfg.Capacity = 1
	p := newProducer(inject, topics, serdes, cfg)
	go p.drain()
	return p
}

func TestProducer_AckCarriesInjectedPosition(t *testing.T) {
	topics := stringTopics()
	p := startProducer(newOrderedInject().inject, topics, stringSerdes(t, topics))
	defer p.CloseSend()

	ctx := context.Background()
	for want := int64(0); want < 3; want++ {
		ack, err := p.Send(ctx, transport.Message{Topic: "logical", Key: "k", Value: "v"})
		if err != nil {
			t.Fatalf("Send: %v", err)
		}
		res, err := ack.Wait(ctx)
		if err != nil {
			t.Fatalf("Wait: %v", err)
		}
		if res.Err != nil {
			t.Fatalf("ack error: %v", res.Err)
		}
		if res.Topic != "phys" || res.Partition != 0 || res.Offset != want {
			t.Fatalf("want phys/0/%d, got %+v", want, res)
		}
	}
}

func TestProducer_InjectionOrderEqualsSubmissionOrder(t *testing.T) {
	topics := stringTopics()
	oi := newOrderedInject()
	p := startProducer(oi.inject, topics, stringSerdes(t, topics))

	ctx := context.Background()
	var acks []*transport.Ack
	for _, v := range []string{"m1", "m2", "m3", "m4"} {
		ack, err := p.Send(ctx, transport.Message{Topic: "logical", Value: v})
		if err != nil {
			t.Fatalf("Send: %v", err)
		}
		acks = append(acks, ack)
	}
	for _, ack := range acks {
		if res, err := ack.Wait(ctx); err != nil || res.Err != nil {
			t.Fatalf("ack: %+v %v", res, err)
		}
	}

	want := []string{"m1", "m2", "m3", "m4"}
	for i := range want {
		if oi.order[i] != want[i] {
			t.Fatalf("want FIFO %v, got %v", want, oi.order)
		}
	}
}

func TestProducer_SerializationFailureResolvesErrorAck(t *testing.T) {
	topics := stringTopics()
	oi := newOrderedInject()
	p := startProducer(oi.inject, topics, stringSerdes(t, topics))
	defer p.CloseSend()

	ctx := context.Background()
	ack, err := p.Send(ctx, transport.Message{Topic: "logical", Value: 42}) // string serde, int value
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	res, err := ack.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	var serr *transport.SerdeError
	if !errors.As(res.Err, &serr) || serr.Op != "serialize" {
		t.Fatalf("want serialize SerdeError, got %v", res.Err)
	}
	if len(oi.order) != 0 {
		t.Fatal("failed message must not reach the driver")
	}

	// The drain loop keeps going after a per-message failure.
	ack, err = p.Send(ctx, transport.Message{Topic: "logical", Value: "ok"})
	if err != nil {
		t.Fatalf("Send after failure: %v", err)
	}
	if res, err := ack.Wait(ctx); err != nil || res.Err != nil {
		t.Fatalf("ack after failure: %+v %v", res, err)
	}
}

func TestProducer_UnknownTopicResolvesErrorAck(t *testing.T) {
	topics := stringTopics()
	p := startProducer(newOrderedInject().inject, topics, stringSerdes(t, topics))
	defer p.CloseSend()

	ctx := context.Background()
	ack, err := p.Send(ctx, transport.Message{Topic: "missing", Value: []byte("v")})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	res, err := ack.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !errors.Is(res.Err, transport.ErrUnknownTopic) {
		t.Fatalf("want ErrUnknownTopic, got %v", res.Err)
	}
}

func TestProducer_InjectionFailureIsFatalToDrain(t *testing.T) {
	topics := stringTopics()
	boom := errors.New("driver detached")
	p := startProducer(func(*transport.InputRecord) error { return boom }, topics, stringSerdes(t, topics))

	ctx := context.Background()
	ack, err := p.Send(ctx, transport.Message{Topic: "logical", Value: "v"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	res, err := ack.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !errors.Is(res.Err, boom) {
		t.Fatalf("want injection error on ack, got %v", res.Err)
	}

	// Anything still queued behind the failure resolves with the same error.
	late, err := p.Send(ctx, transport.Message{Topic: "logical", Value: "queued"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	lres, err := late.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !errors.Is(lres.Err, boom) {
		t.Fatalf("want injection error on queued ack, got %v", lres.Err)
	}

	p.CloseSend()
	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("drain loop did not terminate")
	}
	if err := p.Wait(ctx); !errors.Is(err, boom) {
		t.Fatalf("want injection error from Wait, got %v", err)
	}
}

func TestProducer_MidDrainAckResolvesBeforeCompletion(t *testing.T) {
	topics := stringTopics()
	slow := func(rec *transport.InputRecord) error {
		time.Sleep(30 * time.Millisecond)
		rec.Partition = 0
		return nil
	}
	p := startProducer(slow, topics, stringSerdes(t, topics))

	ctx := context.Background()
	ack, err := p.Send(ctx, transport.Message{Topic: "logical", Value: "v"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	time.Sleep(5 * time.Millisecond) // let the drain loop pick it up
	p.CloseSend()

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("drain loop did not terminate")
	}
	select {
	case res := <-ack.Done():
		if res.Err != nil {
			t.Fatalf("mid-drain ack: %v", res.Err)
		}
	default:
		t.Fatal("ack unresolved after completion settled")
	}
}

func TestProducer_SendParkedOnFullStreamSurvivesCloseSend(t *testing.T) {
	topics := stringTopics()
	release := make(chan struct{})
	inject := func(rec *transport.InputRecord) error {
		<-release
		rec.Partition = 0
		return nil
	}
	p := startProducer(inject, topics, stringSerdes(t, topics))

	ctx := context.Background()
	var acks []*transport.Ack
	// One envelope held by the drain loop, one filling the stream.
	for i := 0; i < 2; i++ {
		ack, err := p.Send(ctx, transport.Message{Topic: "logical", Value: "v"})
		if err != nil {
			t.Fatalf("Send: %v", err)
		}
		acks = append(acks, ack)
	}

	parked := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				parked <- fmt.Errorf("parked Send panicked: %v", r)
			}
		}()
		ack, err := p.Send(ctx, transport.Message{Topic: "logical", Value: "v"})
		if err != nil {
			if errors.Is(err, transport.ErrClosed) {
				parked <- nil
			} else {
				parked <- err
			}
			return
		}
		res, err := ack.Wait(ctx)
		if err != nil {
			parked <- err
			return
		}
		parked <- res.Err
	}()
	time.Sleep(5 * time.Millisecond) // let the third Send park on the full stream

	closed := make(chan struct{})
	go func() { p.CloseSend(); close(closed) }()
	close(release)

	if err := <-parked; err != nil {
		t.Fatalf("parked Send: %v", err)
	}
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("CloseSend did not return")
	}
	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("drain loop did not terminate")
	}
	for _, ack := range acks {
		if res, err := ack.Wait(ctx); err != nil || res.Err != nil {
			t.Fatalf("ack: %+v %v", res, err)
		}
	}
}

func TestProducer_SendAfterCloseFails(t *testing.T) {
	topics := stringTopics()
	p := startProducer(newOrderedInject().inject, topics, stringSerdes(t, topics))
	p.CloseSend()
	p.CloseSend() // idempotent

	if _, err := p.Send(context.Background(), transport.Message{Topic: "logical"}); !errors.Is(err, transport.ErrClosed) {
		t.Fatalf("want ErrClosed, got %v", err)
	}
}
