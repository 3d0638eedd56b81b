package config

import (
	"shuttle/transport/mock"
)

// LoadTransportConfig delegates to the transport loader while
// centralizing loader entrypoints under internal/config.
func LoadTransportConfig(path string) (mock.Config, error) {
	return mock.LoadConfig(path)
}
