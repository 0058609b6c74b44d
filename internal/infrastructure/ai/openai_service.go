package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
)

var _ ports.BrewAnalyzer = (*OpenAIService)(nil)

const openAIBaseURL = "https://api.openai.com/v1"

// OpenAIService adaptador de ports.BrewAnalyzer sobre Chat Completions de OpenAI.
type OpenAIService struct {
	c client
}

// NewOpenAIService construye el adaptador. model suele ser "gpt-3.5-turbo".
func NewOpenAIService(apiKey, model string, opts ...Option) *OpenAIService {
	return &OpenAIService{c: newClient("OpenAI", apiKey, model, openAIBaseURL, opts)}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

type openAIError struct {
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *openAIError) message() string {
	if e.Error == nil {
		return ""
	}
	return e.Error.Message
}

// AnalyzeBrew pide las cuatro secciones de sugerencias para el brew.
func (s *OpenAIService) AnalyzeBrew(ctx context.Context, in ports.BrewAnalysisInput) (string, error) {
	if s.c.apiKey == "" {
		return "", fmt.Errorf("AI: OPENAI_API_KEY no configurado")
	}
	payload := openAIRequest{
		Model: s.c.model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(in)},
		},
		Temperature: temperature,
		MaxTokens:   maxOutputTokens,
	}
	headers := map[string]string{"Authorization": "Bearer " + s.c.apiKey}

	var resp openAIResponse
	if err := s.c.postJSON(ctx, s.c.baseURL+"/chat/completions", headers, payload, &resp, &openAIError{}); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("AI: OpenAI devolvió respuesta vacía")
	}
	return resp.Choices[0].Message.Content, nil
}
