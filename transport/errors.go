package transport

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTopic = errors.New("transport: unknown topic")
	ErrClosed       = errors.New("transport: closed")
)

// SerdeError marks a per-message serialization or deserialization
// failure. Recoverable: the message is annotated and keeps flowing,
// never dropped.
type SerdeError struct {
	Op    string // "serialize" | "deserialize"
	Topic string
	Err   error
}

func (e *SerdeError) Error() string {
	return fmt.Sprintf("serde: %s %s: %v", e.Op, e.Topic, e.Err)
}

func (e *SerdeError) Unwrap() error { return e.Err }
