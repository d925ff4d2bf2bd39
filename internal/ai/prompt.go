package ai

import (
	"fmt"
	"strings"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

const SystemPrompt = `You are the friendly voice and chat assistant of Goodness Glamour Salon, a premium doorstep beauty service for ladies and kids.

Keep every answer SHORT and CLEAR: at most two sentences, no lists, no markdown. The reply may be spoken aloud on a phone call.

SALON INFORMATION:
- Contact: 9036626642
- Service: we come to the customer's home
- Hours: Monday - Sunday, 9:00 AM - 8:00 PM

SERVICES:
%s
Answer the customer's question, then invite them to book by saying "book appointment". Never invent prices, dates or booking IDs.`

// BuildSystemPrompt renders SystemPrompt with the given service list.
func BuildSystemPrompt(services []models.Service) string {
	var b strings.Builder
	for _, s := range services {
		fmt.Fprintf(&b, "- %s (%s): %s, %s\n", s.Name, s.Category, s.Price, s.Duration)
	}
	return fmt.Sprintf(SystemPrompt, b.String())
}

func historyRole(speaker string) string {
	if speaker == models.SpeakerAssistant {
		return "assistant"
	}
	return "user"
}
