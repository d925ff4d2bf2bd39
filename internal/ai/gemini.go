package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiResponder answers greeting-step questions with Google's Gemini models.
type GeminiResponder struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiResponder(ctx context.Context, apiKey, modelName, systemPrompt string) (*GeminiResponder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)
	model.SetMaxOutputTokens(200)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}
	return &GeminiResponder{client: client, model: model}, nil
}

func (g *GeminiResponder) Reply(ctx context.Context, req ReplyRequest) (string, error) {
	cs := g.model.StartChat()
	for _, h := range req.History {
		role := "user"
		if historyRole(h.Speaker) == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(h.Utterance)}})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(req.Utterance))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty gemini response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func (g *GeminiResponder) Close() error {
	return g.client.Close()
}
