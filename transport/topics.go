package transport

import (
	"fmt"
	"sort"
)

// TopicConfig describes one logical topic: the physical name the driver
// sees, partition metadata, and the serde bindings used at the boundary.
type TopicConfig struct {
	Name       string
	Partitions int32
	KeySerde   string
	ValueSerde string
}

// TopicMap maps logical topic keys to their configs. Immutable for the
// transport's lifetime.
type TopicMap map[string]TopicConfig

// Resolve looks up a logical key.
func (m TopicMap) Resolve(key string) (TopicConfig, error) {
	tc, ok := m[key]
	if !ok {
		return TopicConfig{}, fmt.Errorf("%w: %q", ErrUnknownTopic, key)
	}
	return tc, nil
}

// LogicalFor reverse-resolves a physical topic name to its logical key.
func (m TopicMap) LogicalFor(physical string) (string, bool) {
	for key, tc := range m {
		if tc.Name == physical {
			return key, true
		}
	}
	return "", false
}

// Keys returns the logical keys in sorted order so that poll cycles
// walk topics deterministically.
func (m TopicMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
