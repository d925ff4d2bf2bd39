package telephony

import (
	"github.com/twilio/twilio-go/twiml"
)

const (
	msgNoSpeech     = "I didn't hear anything. Please speak after the tone."
	msgSpeakClearly = "I didn't hear anything. Please speak clearly."
	msgListening    = "I'm listening."
	msgTechnical    = "I'm sorry, there was a technical issue. Please try again later."
)

func say(text string) *twiml.VoiceSay {
	return &twiml.VoiceSay{Message: text, Voice: SpeechVoice, Language: SpeechLanguage}
}

func gather(action string) *twiml.VoiceGather {
	return &twiml.VoiceGather{
		Input:         "speech",
		Action:        action,
		Method:        "POST",
		SpeechTimeout: "auto",
		Language:      SpeechLanguage,
	}
}

func redirect(url string) *twiml.VoiceRedirect {
	return &twiml.VoiceRedirect{Url: url, Method: "POST"}
}

// GreetingTwiML speaks the welcome and listens for the first answer.
func GreetingTwiML(welcome, action string) (string, error) {
	return twiml.Voice([]twiml.Element{
		say(welcome),
		gather(action),
		say(msgNoSpeech),
		redirect(action),
	})
}

// ReplyTwiML speaks reply and listens again.
func ReplyTwiML(reply, action string) (string, error) {
	return twiml.Voice([]twiml.Element{
		say(reply),
		gather(action),
		say(msgListening),
		redirect(action),
	})
}

// FinalTwiML speaks reply and ends the call.
func FinalTwiML(reply string) (string, error) {
	return twiml.Voice([]twiml.Element{
		say(reply),
		&twiml.VoiceHangup{},
	})
}

// NoSpeechTwiML asks the caller to repeat themselves.
func NoSpeechTwiML(action string) (string, error) {
	return twiml.Voice([]twiml.Element{
		say(msgSpeakClearly),
		redirect(action),
	})
}

// ErrorTwiML apologises and hangs up.
func ErrorTwiML() (string, error) {
	return FinalTwiML(msgTechnical)
}

// MessageTwiML answers an inbound SMS.
func MessageTwiML(body string) (string, error) {
	return twiml.Messages([]twiml.Element{
		&twiml.MessagingMessage{Body: body},
	})
}
