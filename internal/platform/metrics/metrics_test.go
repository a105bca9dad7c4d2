// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestCollector_DomainCounters verifies each recorder increments its series.
*/
func TestCollector_DomainCounters(t *testing.T) {
	collector := NewCollector(prometheus.NewRegistry())

	collector.RecordLogin(OutcomeSuccess)
	collector.RecordLogin(OutcomeSuccess)
	collector.RecordLogin(OutcomeFailure)
	collector.RecordRegistration()
	collector.RecordUpload("products", OutcomeSuccess)
	collector.RecordCacheLookup("products", OutcomeMiss)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.logins.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.logins.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.registrations))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.uploads.WithLabelValues("products", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.cacheLookups.WithLabelValues("products", OutcomeMiss)))
}

/*
TestCollector_NilIsNoop verifies a nil collector can be used as a Recorder.
*/
func TestCollector_NilIsNoop(t *testing.T) {
	var collector *Collector
	var recorder Recorder = collector

	assert.NotPanics(t, func() {
		recorder.RecordLogin(OutcomeFailure)
		recorder.RecordRegistration()
		recorder.RecordUpload("x", OutcomeFailure)
		recorder.RecordCacheLookup("x", OutcomeHit)
	})

	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	assert.NotNil(t, collector.Middleware(handler))
}

/*
TestMiddleware_LabelsByRoutePattern checks route pattern labelling.
*/
func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	collector := NewCollector(prometheus.NewRegistry())

	router := chi.NewRouter()
	router.Use(collector.Middleware)
	router.Get("/items/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.httpRequests.WithLabelValues(http.MethodGet, "/items/{id}", "418")))
}

/*
TestHandler_ExposesMetrics verifies the scrape endpoint output.
*/
func TestHandler_ExposesMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(registry)
	collector.RecordRegistration()

	server := httptest.NewServer(Handler(registry))
	defer server.Close()

	response, err := http.Get(server.URL)
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "shophub_registrations_total 1")
}
