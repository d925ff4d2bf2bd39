package telephony

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminalCallStatus(t *testing.T) {
	for _, s := range []string{"completed", "busy", "no-answer", "failed", "canceled", " Completed "} {
		assert.True(t, IsTerminalCallStatus(s), s)
	}
	for _, s := range []string{"ringing", "in-progress", "queued", ""} {
		assert.False(t, IsTerminalCallStatus(s), s)
	}
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "https://salon.example/voice/incoming", VoiceWebhookURL("https://salon.example/"))
	assert.Equal(t, "https://salon.example/voice/process_speech/CA1", SpeechActionURL("https://salon.example", "CA1"))
	assert.Equal(t, "https://salon.example/voice/status", StatusCallbackURL("https://salon.example"))
}

func TestReplyTwiML(t *testing.T) {
	out, err := ReplyTwiML("Nice to meet you, John!", "https://salon.example/voice/process_speech/CA1")
	require.NoError(t, err)
	assert.Contains(t, out, "<Response>")
	assert.Contains(t, out, `voice="Polly.Joanna"`)
	assert.Contains(t, out, "Nice to meet you, John!")
	assert.Contains(t, out, `input="speech"`)
	assert.Contains(t, out, `speechTimeout="auto"`)
	assert.Contains(t, out, "<Redirect")
	assert.NotContains(t, out, "<Hangup")
}

func TestFinalTwiMLHangsUp(t *testing.T) {
	out, err := FinalTwiML("Thank you!")
	require.NoError(t, err)
	assert.Contains(t, out, "Thank you!")
	assert.Contains(t, out, "<Hangup")
	assert.NotContains(t, out, "<Gather")
}

func TestMessageTwiML(t *testing.T) {
	out, err := MessageTwiML("What's your name?")
	require.NoError(t, err)
	assert.Contains(t, out, "<Message>")
	assert.True(t, strings.Contains(out, "What&#39;s your name?") || strings.Contains(out, "What's your name?") || strings.Contains(out, "What&apos;s your name?"))
}

func TestSimulatedGateway(t *testing.T) {
	g := SimulatedGateway{Logger: zerolog.Nop(), Now: func() time.Time { return time.Unix(1700000000, 0) }}
	sid, err := g.OriginateCall(context.Background(), "+919876543210")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sid, "sim_1700000000_"))
	assert.NoError(t, g.Send(context.Background(), "+919876543210", "hi"))
}

func TestCallParams(t *testing.T) {
	p := callParams("+15550000000", "+919876543210", "https://salon.example")
	require.NotNil(t, p.Url)
	assert.Equal(t, "https://salon.example/voice/incoming", *p.Url)
	require.NotNil(t, p.StatusCallback)
	assert.Equal(t, "https://salon.example/voice/status", *p.StatusCallback)
	require.NotNil(t, p.To)
	assert.Equal(t, "+919876543210", *p.To)
}

func TestNewTwilioRequiresCredentials(t *testing.T) {
	_, err := NewTwilio("", "", "", "", zerolog.Nop())
	assert.Error(t, err)
}
