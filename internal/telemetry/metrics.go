package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecordsInjected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shuttle_records_injected_total",
		Help: "Records forwarded into the topology driver.",
	})
	RecordsPolled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shuttle_records_polled_total",
		Help: "Driver output records surfaced on the consumer stream.",
	})
	PollCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shuttle_poll_cycles_total",
		Help: "Completed consumer poll cycles.",
	})
	Acks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shuttle_acks_total",
		Help: "Resolved acks by outcome.",
	}, []string{"outcome"})
)

func Expose(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
	}()
}
