package telephony

import (
	"context"
	"strings"
)

// Gateway reaches customers over the phone network.
type Gateway interface {
	// Send delivers an SMS.
	Send(ctx context.Context, to, body string) error
	// OriginateCall rings to and connects the call to the voice webhook. It
	// returns the provider's call id.
	OriginateCall(ctx context.Context, to string) (string, error)
}

const (
	SpeechVoice    = "Polly.Joanna"
	SpeechLanguage = "en-US"
)

var terminalStatuses = map[string]bool{
	"completed": true,
	"busy":      true,
	"no-answer": true,
	"failed":    true,
	"canceled":  true,
}

// IsTerminalCallStatus reports whether a call status callback means the call is over.
func IsTerminalCallStatus(status string) bool {
	return terminalStatuses[strings.ToLower(strings.TrimSpace(status))]
}

// VoiceWebhookURL is where providers fetch call instructions.
func VoiceWebhookURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/voice/incoming"
}

// SpeechActionURL is where recognised speech for a call is posted.
func SpeechActionURL(baseURL, callSID string) string {
	return strings.TrimRight(baseURL, "/") + "/voice/process_speech/" + callSID
}

func StatusCallbackURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/voice/status"
}
