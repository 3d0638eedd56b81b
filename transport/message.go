package transport

import "time"

// Message is the generic envelope on both sides of the transport: the
// application submits decoded key/value pairs and gets decoded pairs
// back. Topic is the logical key, not the physical name.
type Message struct {
	Topic     string
	Key       any
	Value     any
	Partition int32
	Timestamp time.Time

	// Err marks a message that failed (de)serialization or a poll cycle
	// that could not enqueue its batch; receivers must check it.
	Err error
}
