package serde

import (
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Proto serializes protobuf messages. New produces the concrete message
// to decode into, one fresh instance per record. Not in the default
// registry since it needs the factory; register a closed-over instance
// where a named binding is wanted.
type Proto struct {
	New func() proto.Message
}

func (p Proto) Serialize(topic string, v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("proto serde: %T is not a proto.Message", v)
	}
	return proto.Marshal(m)
}

func (p Proto) Deserialize(topic string, data []byte) (any, error) {
	if data == nil {
		return nil, nil
	}
	m := p.New()
	if err := proto.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}
