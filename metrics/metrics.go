// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package metrics exposes Prometheus metrics for parse runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ResultOK is the result label for accepted input.
const ResultOK = "OK"

// Collector records metrics for parse runs.
// Every Collector owns its registry, so tests can create as many as they like.
//
// Metrics:
//   - calc_parse_total: parses by source and result code
//   - calc_tokens_total: tokens scanned
//   - calc_parse_duration_seconds: parse duration histogram
//   - calc_tree_depth: depth of accepted expressions
type Collector struct {
	registry *prometheus.Registry

	parses   *prometheus.CounterVec
	tokens   prometheus.Counter
	duration prometheus.Histogram
	depth    prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics.
// If namespace is empty, "calc" is used.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "calc"
	}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_total",
				Help:      "Total number of parses by source and result",
			},
			[]string{"source", "result"},
		),
		tokens: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tokens_total",
				Help:      "Total number of tokens scanned",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "parse_duration_seconds",
				Help:      "Duration of parses in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~262ms
			},
		),
		depth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tree_depth",
				Help:      "Number of operations in accepted expressions",
				Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
			},
		),
	}
	c.registry.MustRegister(c.parses, c.tokens, c.duration, c.depth)
	return c
}

// ObserveParse records one parse.
// code is the error code of a rejected parse, or empty for an accepted one.
// depth is only recorded for accepted parses.
// A nil Collector ignores the call.
func (c *Collector) ObserveParse(source, code string, tokens, depth int, d time.Duration) {
	if c == nil {
		return
	}
	result := code
	if result == "" {
		result = ResultOK
	}
	if source == "" {
		source = "unknown"
	}
	c.parses.WithLabelValues(source, result).Inc()
	c.tokens.Add(float64(tokens))
	c.duration.Observe(d.Seconds())
	if code == "" {
		c.depth.Observe(float64(depth))
	}
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Parses returns the parse counter, labelled by source and result.
func (c *Collector) Parses() *prometheus.CounterVec {
	return c.parses
}

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
