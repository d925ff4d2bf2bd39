package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/2akonsultant/GoodnessGlamour/internal/conversation"
	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

type StartChatRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=64"`
	Phone     string `json:"phone" validate:"required,e164"`
}

type ChatMessageRequest struct {
	Text string `json:"text" validate:"max=1000"`
}

type ChatReply struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Step      string `json:"step,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
}

// @Summary Start a chat booking session
// @Tags chat
// @Accept json
// @Produce json
// @Param body body StartChatRequest true "Session"
// @Success 201 {object} ChatReply
// @Router /api/chat/sessions [post]
func (h *Handler) ChatStart(c *gin.Context) {
	var req StartChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if req.SessionID == "" {
		req.SessionID = "chat:" + uuid.NewString()
	}

	s, err := h.Engine.StartSession(c.Request.Context(), req.SessionID, req.Phone, models.ChannelChat)
	if err != nil {
		h.Logger.Error().Err(err).Str("session_id", req.SessionID).Msg("failed to start chat session")
		writeError(c, http.StatusServiceUnavailable, "SESSIONS_UNAVAILABLE", "Could not start session", err.Error())
		return
	}
	c.JSON(http.StatusCreated, ChatReply{
		SessionID: s.ID,
		Reply:     conversation.MsgWelcome,
		Step:      string(s.Step),
	})
}

// @Summary Send a chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body ChatMessageRequest true "Message"
// @Success 200 {object} ChatReply
// @Router /api/chat/sessions/{id}/messages [post]
func (h *Handler) ChatMessage(c *gin.Context) {
	id := c.Param("id")
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	res := h.Engine.Turn(c.Request.Context(), req.Text, id)
	c.JSON(http.StatusOK, ChatReply{
		SessionID: id,
		Reply:     res.Reply,
		Step:      string(res.Step),
		BookingID: res.BookingID,
	})
}

// @Summary End a chat session
// @Tags chat
// @Param id path string true "Session ID"
// @Success 204
// @Router /api/chat/sessions/{id} [delete]
func (h *Handler) ChatEnd(c *gin.Context) {
	id := c.Param("id")
	if err := h.Engine.EndSession(c.Request.Context(), id); err != nil {
		h.Logger.Error().Err(err).Str("session_id", id).Msg("failed to end chat session")
		writeError(c, http.StatusServiceUnavailable, "SESSIONS_UNAVAILABLE", "Could not end session", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
