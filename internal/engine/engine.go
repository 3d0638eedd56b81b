package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"shuttle/internal/logging"
	"shuttle/transport"
	"shuttle/transport/mock"
)

type Engine struct {
	transport *mock.Transport
}

// Run pumps stdin lines ("topic key value") through the producer and
// prints everything the consumer surfaces, until EOF or ctx cancels.
func (e *Engine) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = e.transport.Close()
	}()
	go func() {
		for m := range e.transport.Consumer.Messages() {
			if m.Err != nil {
				logging.L().Warn("delivery error", "err", m.Err)
				continue
			}
			fmt.Printf("%s@%d %v=%v\n", m.Topic, m.Partition, m.Key, m.Value)
		}
	}()

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			logging.L().Warn("want: <topic> <key> <value>")
			continue
		}
		ack, err := e.transport.Producer.Send(ctx, transport.Message{
			Topic: fields[0],
			Key:   fields[1],
			Value: strings.Join(fields[2:], " "),
		})
		if err != nil {
			// Cancellation closes the transport under us; that is a
			// normal exit, not a pump failure.
			if errors.Is(err, transport.ErrClosed) || ctx.Err() != nil {
				return e.transport.Close()
			}
			return err
		}
		res, err := ack.Wait(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return e.transport.Close()
			}
			return err
		}
		if res.Err != nil {
			logging.L().Warn("send failed", "err", res.Err)
		}
	}
	return e.transport.Close()
}

// Close tears the transport down; safe to call more than once.
func (e *Engine) Close() error { return e.transport.Close() }
