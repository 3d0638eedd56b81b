package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"shuttle/internal/engine"
)

func main() {
	harness := flag.String("harness", "harness.yml", "topology harness file")
	metrics := flag.Int("metrics-port", 0, "prometheus port (0 = disabled)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := engine.Bootstrap(ctx, engine.Config{HarnessYml: *harness, MetricsPort: *metrics})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	if err := e.Run(ctx); err != nil {
		log.Fatalf("shuttle: %v", err)
	}
}
