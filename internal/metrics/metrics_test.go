package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Counters(t *testing.T) {
	m := New()

	m.ObserveAnalysis("ok", 120*time.Millisecond)
	m.ObserveAnalysis("ok", 80*time.Millisecond)
	m.ObserveAnalysis("assembly", time.Second)
	m.ModuleFailed("risk", "upstream")
	m.Generation("risk", "error", 0)
	m.Generation("growth", "ok", 0.0125)
	m.CacheLookup("hit")
	m.HTTPRequest("/health", "200")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyses.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues("assembly")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.moduleFailures.WithLabelValues("risk", "upstream")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("growth", "ok")))
	assert.InDelta(t, 0.0125, testutil.ToFloat64(m.generationCost), 1e-12)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/health", "200")))
}

func TestManager_NilIsNoop(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() {
		m.ObserveAnalysis("ok", time.Second)
		m.ModuleFailed("tca", "schema")
		m.Generation("tca", "ok", 1)
		m.CacheLookup("miss")
		m.HTTPRequest("/", "404")
	})
}

func TestManager_Handler(t *testing.T) {
	m := New()
	m.ObserveAnalysis("cached", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tca_analyses_total{outcome="cached"} 1`)
	assert.Contains(t, string(body), "tca_analysis_duration_seconds_bucket")
	assert.Contains(t, string(body), "go_goroutines")
}
