package serde

import (
	"fmt"

	"github.com/IBM/sarama"
)

// Sarama adapts values that already implement sarama.Encoder
// (StringEncoder, ByteEncoder, custom encoders), so fixtures built for
// a real client reuse their encoding. Deserialize hands back a
// sarama.ByteEncoder so the value round-trips through the same shape.
type Sarama struct{}

func (Sarama) Serialize(topic string, v any) ([]byte, error) {
	switch e := v.(type) {
	case nil:
		return nil, nil
	case sarama.Encoder:
		return e.Encode()
	}
	return nil, fmt.Errorf("sarama serde: %T does not implement sarama.Encoder", v)
}

func (Sarama) Deserialize(topic string, data []byte) (any, error) {
	if data == nil {
		return nil, nil
	}
	return sarama.ByteEncoder(data), nil
}
