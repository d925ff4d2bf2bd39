package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/2akonsultant/GoodnessGlamour/internal/catalog"
	"github.com/2akonsultant/GoodnessGlamour/internal/conversation"
	"github.com/2akonsultant/GoodnessGlamour/internal/db"
	"github.com/2akonsultant/GoodnessGlamour/internal/models"
	"github.com/2akonsultant/GoodnessGlamour/internal/session"
	"github.com/2akonsultant/GoodnessGlamour/internal/telephony"
)

// BookingReader serves the admin booking listing.
type BookingReader interface {
	Get(ctx context.Context, bookingID string) (models.FinalizedBooking, error)
	List(ctx context.Context, f db.ListFilter) ([]models.FinalizedBooking, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Engine        *conversation.Engine
	Sessions      session.Store
	Catalog       *catalog.Catalog
	Bookings      BookingReader
	Store         Pinger
	Gateway       telephony.Gateway
	Validator     *validator.Validate
	Logger        zerolog.Logger
	PublicBaseURL string
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if h.Store != nil {
		if err := h.Store.Ping(ctx); err != nil {
			writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Booking store unavailable", err.Error())
			return
		}
	}
	if p, ok := h.Sessions.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			writeError(c, http.StatusServiceUnavailable, "SESSIONS_UNAVAILABLE", "Session store unavailable", err.Error())
			return
		}
	}
	active, err := h.Sessions.Count(ctx)
	if err != nil {
		writeError(c, http.StatusServiceUnavailable, "SESSIONS_UNAVAILABLE", "Session store unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"service":         "Goodness Glamour Booking Concierge",
		"active_sessions": active,
		"timestamp":       time.Now().UTC(),
	})
}

// @Summary List salon services
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/services [get]
func (h *Handler) Services(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Catalog.List()})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

func writeXML(c *gin.Context, body string) {
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(body))
}
