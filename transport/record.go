package transport

import "time"

// Sentinels for positions the transport never assigns itself; the
// driver fills them in at injection time.
const (
	UnassignedPartition int32 = -1
	UnassignedOffset    int64 = -1
)

// InputRecord crosses the boundary application→driver. Built once per
// submitted message; the driver may assign Partition and Offset during
// injection, nothing else mutates it.
type InputRecord struct {
	Topic     string
	Partition int32
	Offset    int64
	Timestamp time.Time
	Key       []byte
	Value     []byte
	KeySize   int
	ValueSize int
}

// OutputRecord crosses the boundary driver→application. Read-only.
type OutputRecord struct {
	Topic     string
	Partition int32
	Key       []byte
	Value     []byte
}

// NewOutputRecord builds an output record with the partition marked
// unassigned; drivers that track partitions overwrite it.
func NewOutputRecord(topic string, key, value []byte) *OutputRecord {
	return &OutputRecord{Topic: topic, Partition: UnassignedPartition, Key: key, Value: value}
}

// ToInputRecord resolves the logical topic of m against topics and
// builds the driver-side record around the already-encoded key/value.
// The timestamp carries creation-time semantics: the message timestamp
// when set, otherwise now.
func ToInputRecord(topics TopicMap, m Message, key, value []byte) (*InputRecord, error) {
	tc, err := topics.Resolve(m.Topic)
	if err != nil {
		return nil, err
	}
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &InputRecord{
		Topic:     tc.Name,
		Partition: UnassignedPartition,
		Offset:    UnassignedOffset,
		Timestamp: ts,
		Key:       key,
		Value:     value,
		KeySize:   len(key),
		ValueSize: len(value),
	}, nil
}

// FromOutputRecord lifts a driver record into a raw message: the topic
// is still the physical name and key/value are still bytes; the
// consumer pipeline rewrites and decodes them.
func FromOutputRecord(r *OutputRecord) Message {
	return Message{
		Topic:     r.Topic,
		Key:       r.Key,
		Value:     r.Value,
		Partition: r.Partition,
	}
}
