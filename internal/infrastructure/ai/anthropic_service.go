package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
)

var _ ports.BrewAnalyzer = (*AnthropicService)(nil)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
)

// AnthropicService adaptador de ports.BrewAnalyzer sobre la Messages API de Anthropic.
type AnthropicService struct {
	c client
}

// NewAnthropicService construye el adaptador. model suele ser "claude-3-5-haiku-20241022".
func NewAnthropicService(apiKey, model string, opts ...Option) *AnthropicService {
	return &AnthropicService{c: newClient("Anthropic", apiKey, model, anthropicBaseURL, opts)}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type anthropicError struct {
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *anthropicError) message() string {
	if e.Error == nil {
		return ""
	}
	return e.Error.Type + ": " + e.Error.Message
}

// AnalyzeBrew concatena los bloques de texto de la respuesta.
func (s *AnthropicService) AnalyzeBrew(ctx context.Context, in ports.BrewAnalysisInput) (string, error) {
	if s.c.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}
	payload := anthropicRequest{
		Model:       s.c.model,
		MaxTokens:   maxOutputTokens,
		Temperature: temperature,
		System:      systemPrompt,
		Messages:    []anthropicMessage{{Role: "user", Content: userPrompt(in)}},
	}
	headers := map[string]string{
		"x-api-key":         s.c.apiKey,
		"anthropic-version": anthropicVersion,
	}

	var resp anthropicResponse
	if err := s.c.postJSON(ctx, s.c.baseURL+"/messages", headers, payload, &resp, &anthropicError{}); err != nil {
		return "", err
	}
	var parts []string
	for _, block := range resp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return strings.Join(parts, "\n"), nil
}
