//go:build unit

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	t.Run("counters by label", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		rec := metrics.NewPrometheusRecorder(reg)

		rec.ObserveSubmission("success")
		rec.ObserveSubmission("success")
		rec.ObserveSubmission("invalid")
		rec.ObserveTransition(testdrive.ActionConfirm, "success")
		rec.ObserveDraftSave("error")

		expected := `
# HELP testdrive_submissions_total Test drive request submissions by result
# TYPE testdrive_submissions_total counter
testdrive_submissions_total{result="invalid"} 1
testdrive_submissions_total{result="success"} 2
`
		require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "testdrive_submissions_total"))
		series, err := testutil.GatherAndCount(reg, "testdrive_submissions_total", "testdrive_transitions_total", "testdrive_draft_saves_total")
		require.NoError(t, err)
		assert.Equal(t, 4, series)
	})

	t.Run("handler exposes registry", func(t *testing.T) {
		rec := metrics.NewPrometheusRecorder(nil)
		rec.ObserveHTTP(http.MethodGet, "/health", "200", 5*time.Millisecond)

		w := httptest.NewRecorder()
		rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `testdrive_http_request_duration_seconds_count{method="GET",route="/health",status="200"} 1`)
	})
}
