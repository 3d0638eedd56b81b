package mock

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config tunes the mock transport. Zero values take defaults.
type Config struct {
	PollInterval time.Duration `koanf:"poll_interval"` // consumer loop cadence
	Capacity     int           `koanf:"capacity"`      // stream buffer depth
}

const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultCapacity     = 1
)

// LoadConfig merges YAML (if present) with env vars
// (prefix `SHUTTLE_TRANSPORT__`, delimiter `__`).
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	// schema version check (only when YAML is present)
	sv := k.String("schema_version")
	if sv != "" && sv != "v1" {
		return Config{}, fmt.Errorf("transport schema_version %q not supported (want v1)", sv)
	}

	_ = k.Load(env.Provider("SHUTTLE_TRANSPORT__", "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SHUTTLE_TRANSPORT__"))
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Capacity <= 0 {
		c.Capacity = DefaultCapacity
	}
}
