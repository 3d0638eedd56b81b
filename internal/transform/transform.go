// Package transform holds the in-process value transforms a harness
// route can name, behind a string-keyed registry.
package transform

import (
	"bytes"
	"fmt"
)

// Func is applied to each record value crossing a topology route.
type Func func(value []byte) []byte

var registry = map[string]Func{}

// Register binds a name; called from init() or harness setup.
func Register(name string, f Func) { registry[name] = f }

// New returns a transform by name ("echo", "uppercase", "reverse").
func New(name string) (Func, error) {
	if f, ok := registry[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("transform: unsupported transform %q", name)
}

func init() {
	Register("echo", func(v []byte) []byte { return v })
	Register("uppercase", bytes.ToUpper)
	Register("reverse", func(v []byte) []byte {
		out := make([]byte, len(v))
		for i, b := range v {
			out[len(v)-1-i] = b
		}
		return out
	})
}
