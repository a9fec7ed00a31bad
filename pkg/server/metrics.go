package server

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	registry          *prometheus.Registry
	shutdownRequested prometheus.Gauge
	streams           prometheus.Gauge
	events            prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		shutdownRequested: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "graceful",
			Name:      "shutdown_requested",
			Help:      "1 once a termination signal has been received.",
		}),
		streams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "graceful",
			Name:      "sse_streams",
			Help:      "Number of open event streams.",
		}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "graceful",
			Name:      "sse_events_total",
			Help:      "Events sent over all streams.",
		}),
	}
	m.registry.MustRegister(m.shutdownRequested, m.streams, m.events)
	return m
}
