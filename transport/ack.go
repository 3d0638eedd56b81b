package transport

import (
	"context"
	"sync"
)

// AckResult is the outcome of one submitted message: the injected
// position, or the failure that stopped it.
type AckResult struct {
	Topic     string
	Partition int32
	Offset    int64
	Err       error
}

// Ack is a one-shot future. The first Resolve wins; later calls are
// rejected rather than overwriting the result.
type Ack struct {
	once sync.Once
	ch   chan AckResult
}

func NewAck() *Ack { return &Ack{ch: make(chan AckResult, 1)} }

// Resolve delivers the result. Returns false if the ack was already
// resolved.
func (a *Ack) Resolve(r AckResult) bool {
	resolved := false
	a.once.Do(func() {
		a.ch <- r
		resolved = true
	})
	return resolved
}

// Done exposes the result channel; it yields exactly one value.
func (a *Ack) Done() <-chan AckResult { return a.ch }

// Wait blocks for the result or the context, whichever comes first.
func (a *Ack) Wait(ctx context.Context) (AckResult, error) {
	select {
	case r := <-a.ch:
		return r, nil
	case <-ctx.Done():
		return AckResult{}, ctx.Err()
	}
}
