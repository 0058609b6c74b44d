package ai

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/pkg/config"
)

// NewAnalyzer elige el adaptador según AI_PROVIDER. Sin proveedor o sin API key devuelve (nil, nil):
// el análisis queda deshabilitado y cada solicitud responde AnalysisFailed.
func NewAnalyzer(cfg config.AIConfig, opts ...Option) (ports.BrewAnalyzer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "":
		return nil, nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, nil
		}
		return NewOpenAIService(cfg.OpenAIKey, cfg.OpenAIModel, opts...), nil
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, nil
		}
		return NewAnthropicService(cfg.AnthropicKey, cfg.AnthropicModel, opts...), nil
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, nil
		}
		return NewGeminiService(cfg.GeminiKey, cfg.GeminiModel, opts...), nil
	default:
		return nil, fmt.Errorf("AI_PROVIDER desconocido: %q", cfg.Provider)
	}
}
