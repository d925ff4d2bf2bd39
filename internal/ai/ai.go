package ai

import (
	"context"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

// ReplyRequest carries what a responder may use to phrase an off-script reply.
// Fallback is the fixed text the conversation engine would send on its own.
type ReplyRequest struct {
	SessionID string
	Step      models.Step
	Utterance string
	Fallback  string
	History   []models.HistoryEntry
}

// Responder phrases replies the state machine does not script itself. It never
// decides transitions.
type Responder interface {
	Reply(ctx context.Context, req ReplyRequest) (string, error)
}
