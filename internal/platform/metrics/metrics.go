// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

// Package metrics exposes Prometheus instrumentation for the HTTP surface.
//
// # Cardinality
//
// Requests are labeled by route pattern (chi's registered pattern, not the
// raw URL), method, and status class, keeping the label space bounded even
// with UUID-rich paths.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus collectors for the API server.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	registry        *prometheus.Registry
}

// NewCollector creates the HTTP metrics collectors on a private registry.
//
// A private registry over the global default keeps tests free of duplicate
// registration panics when multiple servers are constructed in one process.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests processed",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request processing duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler returns the /metrics scrape endpoint for this collector's registry.
func (collector *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(collector.registry, promhttp.HandlerOpts{})
}

// Middleware instruments every request with a counter and duration histogram.
func (collector *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request)

			route := routePattern(request)
			collector.requestsTotal.WithLabelValues(
				request.Method, route, strconv.Itoa(recorder.status),
			).Inc()
			collector.requestDuration.WithLabelValues(
				request.Method, route,
			).Observe(time.Since(startTime).Seconds())
		})
	}
}

// routePattern resolves the chi route pattern for bounded label cardinality.
func routePattern(request *http.Request) string {
	routeContext := chi.RouteContext(request.Context())
	if routeContext == nil {
		return request.URL.Path
	}

	if pattern := routeContext.RoutePattern(); pattern != "" {
		return pattern
	}

	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}
