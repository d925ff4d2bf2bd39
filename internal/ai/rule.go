package ai

import "context"

// RuleResponder answers with the engine's fixed text.
type RuleResponder struct{}

func (RuleResponder) Reply(_ context.Context, req ReplyRequest) (string, error) {
	return req.Fallback, nil
}
