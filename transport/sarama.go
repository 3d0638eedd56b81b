package transport

import (
	"github.com/IBM/sarama"
)

// Compatibility lifts for fixtures written against sarama message
// types, so handlers built for a real client plug into the mock
// transport unchanged.

// ProducerMessage converts an input record to the sarama producer shape.
func (r *InputRecord) ProducerMessage() *sarama.ProducerMessage {
	return &sarama.ProducerMessage{
		Topic:     r.Topic,
		Partition: r.Partition,
		Offset:    r.Offset,
		Timestamp: r.Timestamp,
		Key:       sarama.ByteEncoder(r.Key),
		Value:     sarama.ByteEncoder(r.Value),
	}
}

// InputRecordFromProducerMessage encodes a sarama producer message into
// an input record, resetting partition and offset to the unassigned
// sentinels.
func InputRecordFromProducerMessage(m *sarama.ProducerMessage) (*InputRecord, error) {
	var key, value []byte
	var err error
	if m.Key != nil {
		if key, err = m.Key.Encode(); err != nil {
			return nil, err
		}
	}
	if m.Value != nil {
		if value, err = m.Value.Encode(); err != nil {
			return nil, err
		}
	}
	return &InputRecord{
		Topic:     m.Topic,
		Partition: UnassignedPartition,
		Offset:    UnassignedOffset,
		Timestamp: m.Timestamp,
		Key:       key,
		Value:     value,
		KeySize:   len(key),
		ValueSize: len(value),
	}, nil
}

// OutputRecordFromConsumerMessage lifts a sarama consumer message into
// the driver-output shape, e.g. for seeding a test driver.
func OutputRecordFromConsumerMessage(m *sarama.ConsumerMessage) *OutputRecord {
	return &OutputRecord{
		Topic:     m.Topic,
		Partition: m.Partition,
		Key:       m.Key,
		Value:     m.Value,
	}
}

// ConsumerMessage converts an output record to the sarama consumer
// shape for handlers that expect it.
func (r *OutputRecord) ConsumerMessage() *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{
		Topic:     r.Topic,
		Partition: r.Partition,
		Key:       r.Key,
		Value:     r.Value,
	}
}
