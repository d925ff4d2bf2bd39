package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/2akonsultant/GoodnessGlamour/internal/conversation"
	"github.com/2akonsultant/GoodnessGlamour/internal/models"
	"github.com/2akonsultant/GoodnessGlamour/internal/telephony"
)

// SMSIncoming runs one conversation turn per inbound text. Each sender has a
// single session keyed by their number; it is removed in the turn that
// completes the booking, so the next text starts over.
func (h *Handler) SMSIncoming(c *gin.Context) {
	from := c.PostForm("From")
	text := c.PostForm("Body")
	ctx := c.Request.Context()

	reply := conversation.MsgSessionLost
	if from != "" {
		id := "sms:" + from
		if _, err := h.Engine.StartSession(ctx, id, from, models.ChannelSMS); err != nil {
			h.Logger.Error().Err(err).Str("session_id", id).Msg("failed to start sms session")
		} else {
			res := h.Engine.TurnAndEnd(ctx, text, id)
			reply = res.Reply
			if res.Ended {
				h.Logger.Info().Str("session_id", id).Str("booking_id", res.BookingID).Msg("sms booking completed")
			}
		}
	}

	body, err := telephony.MessageTwiML(reply)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to render twiml")
		c.Status(http.StatusInternalServerError)
		return
	}
	writeXML(c, body)
}
