package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// HTTPResponder delegates off-script replies to an external bot service that
// exposes POST /reply.
type HTTPResponder struct {
	BaseURL string
	Client  *http.Client
}

type replyRequestBody struct {
	SessionID string `json:"session_id"`
	Step      string `json:"step"`
	Utterance string `json:"utterance"`
	Fallback  string `json:"fallback"`
}

type replyResponseBody struct {
	Reply string `json:"reply"`
}

func (h HTTPResponder) Reply(ctx context.Context, r ReplyRequest) (string, error) {
	if h.Client == nil {
		h.Client = &http.Client{Timeout: 15 * time.Second}
	}

	payload := replyRequestBody{
		SessionID: r.SessionID,
		Step:      string(r.Step),
		Utterance: r.Utterance,
		Fallback:  r.Fallback,
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(h.BaseURL, "/")+"/reply", bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.New("reply service error: " + resp.Status)
	}

	var body replyResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return strings.TrimSpace(body.Reply), nil
}
