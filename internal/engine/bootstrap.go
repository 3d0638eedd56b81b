package engine

import (
	"context"
	"fmt"

	"shuttle/internal/config"
	"shuttle/internal/logging"
	"shuttle/internal/telemetry"
	"shuttle/internal/transform"
	"shuttle/topotest"
	"shuttle/transport"
	"shuttle/transport/mock"
)

type Config struct {
	HarnessYml  string
	MetricsPort int // 0 = disabled; the harness file may override
}

// Bootstrap loads the harness, builds the topology driver from its
// routes, and starts the mock transport over it.
func Bootstrap(ctx context.Context, cfg Config) (*Engine, error) {
	logging.InitFromEnv()

	harness, confPath, err := config.LoadHarness(cfg.HarnessYml)
	if err != nil {
		return nil, fmt.Errorf("harness: %w", err)
	}
	tcfg, err := config.LoadTransportConfig(confPath)
	if err != nil {
		return nil, fmt.Errorf("transport config: %w", err)
	}

	topics := make(transport.TopicMap, len(harness.Topics))
	for _, t := range harness.Topics {
		topics[t.Key] = transport.TopicConfig{
			Name:       t.Name,
			Partitions: t.Partitions,
			KeySerde:   t.KeySerde,
			ValueSerde: t.ValueSerde,
		}
	}

	driver := topotest.New()
	for _, r := range harness.Routes {
		name := r.Transform
		if name == "" {
			name = "echo"
		}
		fn, err := transform.New(name)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", r.From, err)
		}
		driver.Pipe(r.From, r.To, topotest.MapValues(fn))
	}

	tr, err := mock.New(ctx, driver, topics, nil, tcfg)
	if err != nil {
		return nil, err
	}

	port := cfg.MetricsPort
	if harness.MetricsPort != 0 {
		port = harness.MetricsPort
	}
	if port != 0 {
		telemetry.Expose(port)
	}

	return &Engine{transport: tr}, nil
}
