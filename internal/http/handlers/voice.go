package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/2akonsultant/GoodnessGlamour/internal/conversation"
	"github.com/2akonsultant/GoodnessGlamour/internal/models"
	"github.com/2akonsultant/GoodnessGlamour/internal/telephony"
)

// VoiceIncoming answers a new call with the welcome and starts listening.
func (h *Handler) VoiceIncoming(c *gin.Context) {
	callSID := c.PostForm("CallSid")
	from := c.PostForm("From")
	if callSID == "" {
		h.Logger.Warn().Msg("incoming call without CallSid")
		h.voiceError(c)
		return
	}

	if _, err := h.Engine.StartSession(c.Request.Context(), callSID, from, models.ChannelVoice); err != nil {
		h.Logger.Error().Err(err).Str("call_sid", callSID).Msg("failed to start voice session")
		h.voiceError(c)
		return
	}
	h.Logger.Info().Str("call_sid", callSID).Str("from", from).Msg("incoming call")

	body, err := telephony.GreetingTwiML(conversation.MsgWelcome, telephony.SpeechActionURL(h.PublicBaseURL, callSID))
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to render twiml")
		h.voiceError(c)
		return
	}
	writeXML(c, body)
}

// VoiceSpeech feeds one recognised utterance to the conversation.
func (h *Handler) VoiceSpeech(c *gin.Context) {
	callSID := c.Param("call_sid")
	action := telephony.SpeechActionURL(h.PublicBaseURL, callSID)
	speech := strings.TrimSpace(c.PostForm("SpeechResult"))

	var (
		body string
		err  error
	)
	switch {
	case speech == "":
		body, err = telephony.NoSpeechTwiML(action)
	default:
		res := h.Engine.TurnAndEnd(c.Request.Context(), speech, callSID)
		switch res.Step {
		case "", models.StepBookingComplete:
			body, err = telephony.FinalTwiML(res.Reply)
		default:
			body, err = telephony.ReplyTwiML(res.Reply, action)
		}
	}
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to render twiml")
		h.voiceError(c)
		return
	}
	writeXML(c, body)
}

// VoiceStatus ends the session once the provider reports the call is over.
func (h *Handler) VoiceStatus(c *gin.Context) {
	callSID := c.Param("call_sid")
	if callSID == "" {
		callSID = c.PostForm("CallSid")
	}
	status := c.PostForm("CallStatus")
	h.Logger.Info().Str("call_sid", callSID).Str("status", status).Msg("call status")

	if callSID != "" && telephony.IsTerminalCallStatus(status) {
		if err := h.Engine.EndSession(c.Request.Context(), callSID); err != nil {
			h.Logger.Error().Err(err).Str("call_sid", callSID).Msg("failed to end voice session")
		}
	}
	c.Status(http.StatusOK)
}

func (h *Handler) voiceError(c *gin.Context) {
	body, err := telephony.ErrorTwiML()
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	writeXML(c, body)
}
