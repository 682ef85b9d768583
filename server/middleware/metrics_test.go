package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/stanzahq/stanza/server/metrics"
)

func TestPrometheusMetrics(t *testing.T) {
	m := metrics.NewMetrics()

	handler := PrometheusMetrics(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/predict", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/predict", "200")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ActiveRequests.WithLabelValues("/predict")))
}

func TestPrometheusMetricsErrorCounts(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		errorType string
	}{
		{name: "server error", status: http.StatusBadGateway, errorType: "server_error"},
		{name: "client error", status: http.StatusBadRequest, errorType: "client_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.NewMetrics()

			handler := PrometheusMetrics(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest("GET", "/predict", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, float64(1), testutil.ToFloat64(m.ErrorsTotal.WithLabelValues(tt.errorType)))
		})
	}
}
