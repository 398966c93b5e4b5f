package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RegistraRevisionDePostulacion(t *testing.T) {
	m := New()
	m.ObservePostulacionReview("aceptada", true)
	m.ObservePostulacionReview("aceptada", true)
	m.ObservePostulacionReview("rechazada", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reviews.WithLabelValues("aceptada", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reviews.WithLabelValues("rechazada", "false")))
}

func TestMetrics_RegistraPeticionYExpone(t *testing.T) {
	m := New()
	done := m.InFlight()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))
	done()
	m.ObserveRequest("get", "/api/v1/proyectos/:id", 200, 15*time.Millisecond)
	m.ObserveRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/proyectos/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "softlink_http_requests_total")
}
