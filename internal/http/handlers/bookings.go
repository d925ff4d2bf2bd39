package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/2akonsultant/GoodnessGlamour/internal/db"
)

// @Summary List bookings
// @Tags bookings
// @Produce json
// @Param phone query string false "Customer phone"
// @Param service query string false "Service key"
// @Param source query string false "voice_call, sms or web_chat"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]any
// @Router /api/bookings [get]
func (h *Handler) BookingsList(c *gin.Context) {
	if h.Bookings == nil {
		writeError(c, http.StatusNotImplemented, "NO_BOOKING_STORE", "Bookings are not persisted in this deployment", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	items, err := h.Bookings.List(c.Request.Context(), db.ListFilter{
		Phone:   c.Query("phone"),
		Service: c.Query("service"),
		Source:  c.Query("source"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
}

// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} models.FinalizedBooking
// @Failure 404 {object} map[string]any
// @Router /api/bookings/{id} [get]
func (h *Handler) BookingGet(c *gin.Context) {
	if h.Bookings == nil {
		writeError(c, http.StatusNotImplemented, "NO_BOOKING_STORE", "Bookings are not persisted in this deployment", nil)
		return
	}
	b, err := h.Bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrBookingNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}
