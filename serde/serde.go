// Package serde provides the built-in serializer/deserializer pairs and
// a string-keyed registry for binding them from configuration.
package serde

import (
	"fmt"

	"shuttle/transport"
)

// Factory builds a Serde (Bytes, String, JSON, …).
type Factory func() transport.Serde

var registry = map[string]Factory{}

// Register binds a name; called from init() or test setup.
func Register(name string, f Factory) { registry[name] = f }

// New returns a serde by name ("bytes", "string", "json", "sarama").
func New(name string) (transport.Serde, error) {
	if f, ok := registry[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("serde: unsupported serde %q", name)
}

func init() {
	Register("bytes", func() transport.Serde { return Bytes{} })
	Register("string", func() transport.Serde { return String{} })
	Register("json", func() transport.Serde { return JSON{} })
	Register("sarama", func() transport.Serde { return Sarama{} })
}
