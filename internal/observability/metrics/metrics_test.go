package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-health-companion/internal/intake"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIntakeMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg, func() int { return 3 })

	m.ObserveTransition(intake.TransitionAdvance, true)
	m.ObserveTransition(intake.TransitionAdvance, true)
	m.ObserveTransition(intake.TransitionJump, false)
	m.ObserveCompletion(intake.SaveFailed)
	m.ObservePersistError("intake")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitionsTotal.WithLabelValues(intake.TransitionAdvance, "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitionsTotal.WithLabelValues(intake.TransitionJump, "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.completionsTotal.WithLabelValues(string(intake.SaveFailed))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistErrors.WithLabelValues("intake")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.activeSessions))
}

func TestIntakeMetricsNilSafe(t *testing.T) {
	var m *IntakeMetrics
	m.ObserveTransition(intake.TransitionRetreat, true)
	m.ObserveCompletion(intake.SaveSucceeded)
	m.ObservePersistError("goals")
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.HandleFunc("/goals/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/goals/abc", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/goals/{id}", http.MethodDelete, "204")))
}
