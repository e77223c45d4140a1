package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTimelineSync(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTimelineSync(KindBattle, OutcomeCreated)
	m.ObserveTimelineSync(KindBattle, OutcomeCreated)
	m.ObserveTimelineSync(KindBirth, OutcomeFailed)

	assert.Equal(t, float64(2), m.TimelineSyncCount(KindBattle, OutcomeCreated))
	assert.Equal(t, float64(1), m.TimelineSyncCount(KindBirth, OutcomeFailed))
	assert.Equal(t, float64(0), m.TimelineSyncCount(KindHistorical, OutcomeSkipped))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTimelineSync(KindBattle, OutcomeCreated)
	})
	assert.Equal(t, float64(0), m.TimelineSyncCount(KindBattle, OutcomeCreated))
}

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", m.Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",route="/ping",status="200"} 1`), body)
}
