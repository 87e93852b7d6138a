// Package metrics declares the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var latencyBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

var (
	ResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wildlife_resolutions_total",
		Help: "Species resolutions by outcome status",
	}, []string{"status"})
	DegradedSourcesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wildlife_degraded_sources_total",
		Help: "Sources that failed during a resolution",
	}, []string{"source"})
	ResolvedSpeciesCount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "wildlife_resolved_species_count",
		Help:    "Number of species returned by a resolution",
		Buckets: []float64{0, 1, 5, 10, 20, 30, 50, 100, 250},
	})

	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wildlife_provider_requests_total",
		Help: "Outbound provider requests",
	}, []string{"provider"})
	ProviderFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wildlife_provider_fail_total",
		Help: "Outbound provider failures",
	}, []string{"provider"})
	ProviderDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wildlife_provider_duration_ms",
		Help:    "Outbound provider call duration in milliseconds",
		Buckets: latencyBuckets,
	}, []string{"provider"})

	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wildlife_cache_hits_total",
		Help: "Cache hits by cache name",
	}, []string{"cache"})
	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wildlife_cache_misses_total",
		Help: "Cache misses by cache name",
	}, []string{"cache"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wildlife_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "code"})
	HTTPDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wildlife_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: latencyBuckets,
	}, []string{"route"})
	PanicsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wildlife_http_panics_total",
		Help: "Handler panics recovered by the HTTP stack",
	})
)

func init() {
	prometheus.MustRegister(
		ResolutionsTotal,
		DegradedSourcesTotal,
		ResolvedSpeciesCount,
		ProviderRequestsTotal,
		ProviderFailTotal,
		ProviderDurationMs,
		CacheHitsTotal,
		CacheMissesTotal,
		HTTPRequestsTotal,
		HTTPDurationMs,
		PanicsTotal,
	)
}

// Handler exposes the registered collectors for scraping.
func Handler() http.Handler { return promhttp.Handler() }
