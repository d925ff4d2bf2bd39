package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/2akonsultant/GoodnessGlamour/internal/qrcode"
)

type TriggerCallRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	Source      string `json:"source" validate:"omitempty,max=32"`
}

type TriggerCallResponse struct {
	Success     bool   `json:"success"`
	CallSID     string `json:"call_sid"`
	Message     string `json:"message"`
	PhoneNumber string `json:"phone_number"`
	Source      string `json:"source"`
}

// @Summary Ask the assistant to call a customer
// @Tags voice
// @Accept json
// @Produce json
// @Param body body TriggerCallRequest true "Phone number"
// @Success 200 {object} TriggerCallResponse
// @Failure 429 {object} map[string]any
// @Router /trigger-voice-call [post]
func (h *Handler) TriggerVoiceCall(c *gin.Context) {
	var req TriggerCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Phone number must be in international format, e.g. +919876543210", err.Error())
		return
	}
	if req.Source == "" {
		req.Source = "qr_code"
	}

	sid, err := h.Gateway.OriginateCall(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		h.Logger.Error().Err(err).Str("to", req.PhoneNumber).Msg("failed to place call")
		writeError(c, http.StatusBadGateway, "CALL_FAILED", "Could not place the call", err.Error())
		return
	}
	h.Logger.Info().Str("to", req.PhoneNumber).Str("source", req.Source).Str("call_sid", sid).Msg("voice call triggered")
	c.JSON(http.StatusOK, TriggerCallResponse{
		Success:     true,
		CallSID:     sid,
		Message:     "Voice call initiated successfully",
		PhoneNumber: req.PhoneNumber,
		Source:      req.Source,
	})
}

// QRLanding renders the page opened by the printed QR code.
func (h *Handler) QRLanding(c *gin.Context) {
	c.HTML(http.StatusOK, "landing", gin.H{"Services": h.Catalog.List()})
}

// @Summary QR code for the voice booking page
// @Tags voice
// @Produce png
// @Produce json
// @Param format query string false "png (default) or json"
// @Param scale query int false "pixels per module"
// @Success 200 {file} binary
// @Router /api/qr/generate [get]
func (h *Handler) QRGenerate(c *gin.Context) {
	url := qrcode.LandingURL(h.PublicBaseURL)
	scale, _ := strconv.Atoi(c.DefaultQuery("scale", strconv.Itoa(qrcode.DefaultScale)))
	if scale <= 0 || scale > 32 {
		scale = qrcode.DefaultScale
	}
	img, err := qrcode.PNG(url, scale)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "QR_ERROR", "Failed to generate QR code", err.Error())
		return
	}
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, gin.H{
			"qr_id":    "qr_" + time.Now().UTC().Format("20060102150405"),
			"qr_url":   url,
			"qr_image": qrcode.DataURI(img),
		})
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}
