package transport

// Serializer encodes a decoded key or value for the given logical topic.
type Serializer interface {
	Serialize(topic string, v any) ([]byte, error)
}

// Deserializer decodes bytes read back from the driver.
type Deserializer interface {
	Deserialize(topic string, data []byte) (any, error)
}

// Serde couples both directions for one field.
type Serde interface {
	Serializer
	Deserializer
}

// SerdePair holds the serdes for a topic's key and value fields.
type SerdePair struct {
	Key   Serde
	Value Serde
}

// SerdeMap maps logical topic keys to their serde pairs.
type SerdeMap map[string]SerdePair
