// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package uistate

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "juju_gui"

// Collector is a prometheus.Collector that collects metrics about
// state dispatching.
type Collector struct {
	dispatchedCallbacks *prometheus.CounterVec
	missingCallbacks    *prometheus.CounterVec
	emptiedSections     *prometheus.CounterVec
	loadedRequests      prometheus.Counter
	generatedURLs       prometheus.Counter
	dispatchDuration    prometheus.Histogram
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	return &Collector{
		dispatchedCallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "dispatched_callbacks_total",
				Help:      "The number of component callbacks run.",
			}, []string{"section", "component"},
		),
		missingCallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "missing_callbacks_total",
				Help:      "The number of components dispatched with no registered callback.",
			}, []string{"section", "component"},
		),
		emptiedSections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "emptied_sections_total",
				Help:      "The number of times a section was emptied before a new component.",
			}, []string{"section"},
		),
		loadedRequests: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "loaded_requests_total",
				Help:      "The number of requests turned into a state.",
			},
		),
		generatedURLs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "generated_urls_total",
				Help:      "The number of urls generated from state changes.",
			},
		),
		dispatchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "dispatch_duration_seconds",
				Help:      "The time taken to dispatch a state to the view callbacks.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.dispatchedCallbacks.Describe(ch)
	c.missingCallbacks.Describe(ch)
	c.emptiedSections.Describe(ch)
	c.loadedRequests.Describe(ch)
	c.generatedURLs.Describe(ch)
	c.dispatchDuration.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.dispatchedCallbacks.Collect(ch)
	c.missingCallbacks.Collect(ch)
	c.emptiedSections.Collect(ch)
	c.loadedRequests.Collect(ch)
	c.generatedURLs.Collect(ch)
	c.dispatchDuration.Collect(ch)
}

// The recording methods below accept a nil collector.

func (c *Collector) dispatched(section SectionName, component string) {
	if c != nil {
		c.dispatchedCallbacks.WithLabelValues(string(section), component).Inc()
	}
}

func (c *Collector) missing(section SectionName, component string) {
	if c != nil {
		c.missingCallbacks.WithLabelValues(string(section), component).Inc()
	}
}

func (c *Collector) emptied(section SectionName) {
	if c != nil {
		c.emptiedSections.WithLabelValues(string(section)).Inc()
	}
}

func (c *Collector) loaded() {
	if c != nil {
		c.loadedRequests.Inc()
	}
}

func (c *Collector) generated() {
	if c != nil {
		c.generatedURLs.Inc()
	}
}

func (c *Collector) observeDispatch(seconds float64) {
	if c != nil {
		c.dispatchDuration.Observe(seconds)
	}
}
