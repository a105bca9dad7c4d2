// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics collects Prometheus metrics for the API and exposes them
// on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the domain recorders.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
)

// Recorder is what services report into. A nil *Collector is a valid no-op
// Recorder, which keeps unit tests free of registry setup.
type Recorder interface {
	RecordLogin(outcome string)
	RecordRegistration()
	RecordUpload(folder, outcome string)
	RecordCacheLookup(cache, outcome string)
}

// Collector holds every metric the server exports.
type Collector struct {
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	logins        *prometheus.CounterVec
	registrations prometheus.Counter
	uploads       *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shophub_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shophub_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shophub_login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shophub_registrations_total",
			Help: "Accounts created.",
		}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shophub_media_uploads_total",
			Help: "Media uploads by folder and outcome.",
		}, []string{"folder", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shophub_cache_lookups_total",
			Help: "Listing cache lookups by cache name and outcome.",
		}, []string{"cache", "outcome"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.logins,
		c.registrations,
		c.uploads,
		c.cacheLookups,
	)

	return c
}

// RecordLogin counts a login attempt.
func (c *Collector) RecordLogin(outcome string) {
	if c == nil {
		return
	}
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordRegistration counts a created account.
func (c *Collector) RecordRegistration() {
	if c == nil {
		return
	}
	c.registrations.Inc()
}

// RecordUpload counts a media upload.
func (c *Collector) RecordUpload(folder, outcome string) {
	if c == nil {
		return
	}
	c.uploads.WithLabelValues(folder, outcome).Inc()
}

// RecordCacheLookup counts a listing cache hit or miss.
func (c *Collector) RecordCacheLookup(cache, outcome string) {
	if c == nil {
		return
	}
	c.cacheLookups.WithLabelValues(cache, outcome).Inc()
}

// Middleware records request counts and latency labelled by the chi route
// pattern, so path parameters do not explode label cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		wrapped := chimiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(wrapped, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}

		c.httpRequests.WithLabelValues(request.Method, route, strconv.Itoa(status)).Inc()
		c.httpLatency.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
	})
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
