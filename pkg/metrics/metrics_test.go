package metrics

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetrics_Exposition(t *testing.T) {
	m := New("rooms")

	m.ObserveHTTP(http.MethodPost, "/api/v1/reservations", "201", 15*time.Millisecond)
	m.ObserveQuery("INSERT", time.Millisecond, nil)
	m.ObserveQuery("SELECT", time.Millisecond, errors.New("boom"))
	m.ObserveAdmission("create", "conflict")
	m.ObservePool(sql.DBStats{OpenConnections: 4, InUse: 1, Idle: 3})

	body := scrape(t, m)

	assert.Contains(t, body, `http_requests_total{method="POST",route="/api/v1/reservations",service="rooms",status="201"} 1`)
	assert.Contains(t, body, `db_query_errors_total{operation="SELECT",service="rooms"} 1`)
	assert.Contains(t, body, `admission_decisions_total{operation="create",outcome="conflict",service="rooms"} 1`)
	assert.Contains(t, body, `db_open_connections{service="rooms"} 4`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := New("a")
	b := New("b")

	a.ObserveAdmission("update", "admitted")

	assert.Contains(t, scrape(t, a), "admission_decisions_total")
	assert.NotContains(t, scrape(t, b), `outcome="admitted"`)
}
