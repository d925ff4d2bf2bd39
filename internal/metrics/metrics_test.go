package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.SessionStarted("voice")
	m.Turn("greeting")
	m.BookingConfirmed("voice_call")
	m.CompletionError("save")
	m.CompletionDropped()
	m.Notification("customer", nil)
	m.RegisterSessionGauge(func() float64 { return 1 })
}

func TestCounters(t *testing.T) {
	m := New()
	m.BookingConfirmed("sms")
	m.BookingConfirmed("sms")
	m.Notification("salon", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsConfirmed.WithLabelValues("sms")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("salon", "failed")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	m.RegisterSessionGauge(func() float64 { return 3 })

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/voice/status/:call_sid", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/voice/status/CA1", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `route="/voice/status/:call_sid"`))
	assert.True(t, strings.Contains(body, "concierge_active_sessions 3"))
}
