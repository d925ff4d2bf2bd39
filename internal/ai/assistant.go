package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAICompatAssistant talks to any /chat/completions endpoint.
type OpenAICompatAssistant struct {
	BaseURL      string
	Model        string
	APIKey       string
	MaxTokens    int
	SystemPrompt string
	Client       *http.Client

	cache *replyCache
}

func NewOpenAICompatAssistant(baseURL, model, apiKey, systemPrompt string) *OpenAICompatAssistant {
	return &OpenAICompatAssistant{
		BaseURL:      baseURL,
		Model:        model,
		APIKey:       apiKey,
		MaxTokens:    200,
		SystemPrompt: systemPrompt,
		cache:        newReplyCache(60 * time.Second),
	}
}

type RateLimitError struct {
	RetryAfter time.Duration
}

func (r RateLimitError) Error() string {
	if r.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", r.RetryAfter)
	}
	return "rate limited"
}

func (a *OpenAICompatAssistant) Reply(ctx context.Context, req ReplyRequest) (string, error) {
	history := make([]ChatMessage, 0, len(req.History)+1)
	if a.SystemPrompt != "" {
		history = append(history, ChatMessage{Role: "system", Content: a.SystemPrompt})
	}
	for _, h := range req.History {
		history = append(history, ChatMessage{Role: historyRole(h.Speaker), Content: h.Utterance})
	}
	return a.Ask(ctx, req.Utterance, history)
}

func (a *OpenAICompatAssistant) Ask(ctx context.Context, prompt string, history []ChatMessage) (string, error) {
	if strings.TrimSpace(a.BaseURL) == "" {
		return "", fmt.Errorf("ASSISTANT_BASE_URL is not set")
	}
	if strings.TrimSpace(a.Model) == "" {
		return "", fmt.Errorf("ASSISTANT_MODEL is not set")
	}

	// Only context-free questions are cached; a follow-up depends on what came before.
	cacheable := len(history) <= 1
	if cacheable && a.cache != nil {
		if v, ok := a.cache.get(prompt); ok {
			return v, nil
		}
	}

	payload := struct {
		Model       string        `json:"model"`
		Temperature float64       `json:"temperature,omitempty"`
		MaxTokens   int           `json:"max_tokens,omitempty"`
		Messages    []ChatMessage `json:"messages"`
	}{
		Model:     a.Model,
		MaxTokens: a.MaxTokens,
		Messages:  append(append([]ChatMessage{}, history...), ChatMessage{Role: "user", Content: prompt}),
	}

	b, _ := json.Marshal(payload)
	url := strings.TrimRight(a.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(a.APIKey) != "" {
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
	}

	client := a.Client
	if client == nil {
		timeout := 45 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
		client = &http.Client{Timeout: timeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("assistant request timed out")
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", fmt.Errorf("assistant request timed out")
		}
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if resp.StatusCode == http.StatusTooManyRequests {
			if d := extractRetryAfter(errBody); d > 0 {
				return "", RateLimitError{RetryAfter: d}
			}
			return "", RateLimitError{}
		}
		return "", fmt.Errorf("assistant http error: %s: %v", resp.Status, errBody)
	}

	var res struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("empty assistant response")
	}
	answer := strings.TrimSpace(res.Choices[0].Message.Content)
	if cacheable && a.cache != nil {
		a.cache.set(prompt, answer)
	}
	return answer, nil
}

type replyCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	store map[string]cacheEntry
}

type cacheEntry struct {
	value string
	exp   time.Time
}

func newReplyCache(ttl time.Duration) *replyCache {
	return &replyCache{ttl: ttl, store: map[string]cacheEntry{}}
}

func (c *replyCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.store[key]; ok {
		if time.Now().Before(e.exp) {
			return e.value, true
		}
		delete(c.store, key)
	}
	return "", false
}

func (c *replyCache) set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = cacheEntry{
		value: value,
		exp:   time.Now().Add(c.ttl),
	}
}

func extractRetryAfter(errBody map[string]any) time.Duration {
	errObj, ok := errBody["error"].(map[string]any)
	if !ok {
		return 0
	}
	details, ok := errObj["details"].([]any)
	if !ok {
		return 0
	}
	for _, d := range details {
		m, ok := d.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := m["@type"].(string); ok && strings.Contains(t, "RetryInfo") {
			if s, ok := m["retryDelay"].(string); ok {
				if dur, err := time.ParseDuration(s); err == nil {
					return dur
				}
			}
		}
	}
	return 0
}
