package serde

import "fmt"

// Bytes passes []byte through untouched; nil stays nil.
type Bytes struct{}

func (Bytes) Serialize(topic string, v any) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	}
	return nil, fmt.Errorf("bytes serde: want []byte, got %T", v)
}

func (Bytes) Deserialize(topic string, data []byte) (any, error) {
	return data, nil
}

// String encodes strings as raw UTF-8 bytes.
type String struct{}

func (String) Serialize(topic string, v any) ([]byte, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(s), nil
	}
	return nil, fmt.Errorf("string serde: want string, got %T", v)
}

func (String) Deserialize(topic string, data []byte) (any, error) {
	if data == nil {
		return nil, nil
	}
	return string(data), nil
}
