package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectMetric returns the first metric from c whose labels include labels.
func collectMetric(c prometheus.Collector, labels map[string]string) *dto.Metric {
	ch := make(chan prometheus.Metric, 100)
	c.Collect(ch)
	close(ch)

	for m := range ch {
		d := &dto.Metric{}
		if err := m.Write(d); err != nil {
			continue
		}
		if hasLabels(d, labels) {
			return d
		}
	}
	return nil
}

func hasLabels(d *dto.Metric, labels map[string]string) bool {
	for k, v := range labels {
		found := false
		for _, lp := range d.GetLabel() {
			if lp.GetName() == k && lp.GetValue() == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestPrometheusMetrics_CountsByRoutePattern(t *testing.T) {
	handler := serveWithChi(PrometheusMetrics("count-svc"), "/api/products/{ref}", statusHandler(http.StatusOK))

	for _, ref := range []string{"1", "2", "classic-tee"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/products/"+ref, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	m := collectMetric(httpRequestsTotal, map[string]string{
		"service": "count-svc", "method": "GET", "path": "/api/products/{ref}", "status": "200",
	})
	require.NotNil(t, m)
	assert.GreaterOrEqual(t, m.GetCounter().GetValue(), float64(3))
}

func TestPrometheusMetrics_DurationHistogram(t *testing.T) {
	handler := serveWithChi(PrometheusMetrics("hist-svc"), "/test", statusHandler(http.StatusBadRequest))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	m := collectMetric(httpRequestDuration, map[string]string{"service": "hist-svc", "status": "400"})
	require.NotNil(t, m)
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(1))
}

func TestPrometheusMetrics_InFlightGauge(t *testing.T) {
	inFlight := float64(-1)
	handler := serveWithChi(PrometheusMetrics("inflight-svc"), "/test", func(w http.ResponseWriter, r *http.Request) {
		if m := collectMetric(httpRequestsInFlight, map[string]string{"service": "inflight-svc"}); m != nil {
			inFlight = m.GetGauge().GetValue()
		}
		w.WriteHeader(http.StatusOK)
	})

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, float64(1), inFlight)
	m := collectMetric(httpRequestsInFlight, map[string]string{"service": "inflight-svc"})
	require.NotNil(t, m)
	assert.Equal(t, float64(0), m.GetGauge().GetValue())
}

func TestPrometheusMetrics_UnknownRouteOutsideChi(t *testing.T) {
	handler := PrometheusMetrics("bare-svc")(okHandler())
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	m := collectMetric(httpRequestsTotal, map[string]string{"service": "bare-svc", "path": "unknown"})
	require.NotNil(t, m)
}
