package main

import "github.com/prometheus/client_golang/prometheus"

const subsystem = "charconv"

type metrics struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	frames      *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Subsystem: subsystem,
				Name:      "conversions_total",
				Help:      "Values converted, by target type.",
			},
			[]string{"type"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Subsystem: subsystem,
				Name:      "conversion_failures_total",
				Help:      "Inputs that could not be parsed, by target type.",
			},
			[]string{"type"},
		),
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Subsystem: subsystem,
				Name:      "frames_total",
				Help:      "Frames processed, by operation.",
			},
			[]string{"operation"},
		),
	}
	m.registry.MustRegister(m.conversions, m.failures, m.frames)
	return m
}
