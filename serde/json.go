package serde

import "encoding/json"

// JSON marshals any value and decodes into the generic shape (maps,
// slices, strings, float64 numbers).
type JSON struct{}

func (JSON) Serialize(topic string, v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (JSON) Deserialize(topic string, data []byte) (any, error) {
	if data == nil {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
