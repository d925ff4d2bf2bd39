package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/2akonsultant/GoodnessGlamour/internal/catalog"
	"github.com/2akonsultant/GoodnessGlamour/internal/config"
	"github.com/2akonsultant/GoodnessGlamour/internal/conversation"
	"github.com/2akonsultant/GoodnessGlamour/internal/http/handlers"
	"github.com/2akonsultant/GoodnessGlamour/internal/metrics"
	"github.com/2akonsultant/GoodnessGlamour/internal/session"
	"github.com/2akonsultant/GoodnessGlamour/internal/telephony"
)

func newTestRouter(cfg config.Config, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sessions := session.NewMemoryStore()
	h := &handlers.Handler{
		Engine:        conversation.New(sessions, catalog.Default()),
		Sessions:      sessions,
		Catalog:       catalog.Default(),
		Gateway:       telephony.SimulatedGateway{Logger: zerolog.Nop()},
		Validator:     validator.New(),
		Logger:        zerolog.Nop(),
		PublicBaseURL: "http://localhost:5000",
	}
	return Router(cfg, h, m, zerolog.Nop())
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterAdminKeyGuardsBookings(t *testing.T) {
	r := newTestRouter(config.Config{CORSAllowed: "*", AdminKey: "secret", CallRatePerMinute: 6}, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("X-Admin-Key", "secret")
	if w := serve(r, req); w.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501 with key and no store, got %d", w.Code)
	}
}

func TestRouterRateLimitsCallTrigger(t *testing.T) {
	r := newTestRouter(config.Config{CORSAllowed: "*", CallRatePerMinute: 1}, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/trigger-voice-call", strings.NewReader(`{"phone_number":"+919876543210"}`))
		req.Header.Set("Content-Type", "application/json")
		codes = append(codes, serve(r, req).Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected two calls then 429, got %v", codes)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	r := newTestRouter(config.Config{CORSAllowed: "*", CallRatePerMinute: 6, MetricsEnabled: true}, m)

	serve(r, httptest.NewRequest(http.MethodGet, "/api/services", nil))
	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `route="/api/services"`) {
		t.Fatalf("expected request metrics for /api/services, got %d", w.Code)
	}
}

func TestRouterMetricsDisabled(t *testing.T) {
	r := newTestRouter(config.Config{CORSAllowed: "*", CallRatePerMinute: 6}, nil)
	if w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil)); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when metrics are off, got %d", w.Code)
	}
}
