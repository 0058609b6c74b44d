package ai

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
)

var _ ports.BrewAnalyzer = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService adaptador de ports.BrewAnalyzer sobre generateContent de Google Gemini.
type GeminiService struct {
	c client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
func NewGeminiService(apiKey, model string, opts ...Option) *GeminiService {
	return &GeminiService{c: newClient("Gemini", apiKey, model, geminiBaseURL, opts)}
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *geminiError) message() string {
	if e.Error == nil {
		return ""
	}
	return e.Error.Message
}

// AnalyzeBrew concatena las partes del primer candidato.
func (s *GeminiService) AnalyzeBrew(ctx context.Context, in ports.BrewAnalysisInput) (string, error) {
	if s.c.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}
	payload := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: userPrompt(in)}}}},
		GenerationConfig:  genConfig{Temperature: temperature, MaxOutputTokens: maxOutputTokens},
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.c.baseURL, url.PathEscape(s.c.model), url.QueryEscape(s.c.apiKey))

	var resp geminiResponse
	if err := s.c.postJSON(ctx, endpoint, nil, payload, &resp, &geminiError{}); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	var parts []string
	for _, p := range resp.Candidates[0].Content.Parts {
		if strings.TrimSpace(p.Text) != "" {
			parts = append(parts, p.Text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return strings.Join(parts, ""), nil
}
