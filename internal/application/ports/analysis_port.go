package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Brewlog-api/internal/domain/brewing"
)

// BrewAnalysisInput datos de un brew que se envían al servicio de análisis.
type BrewAnalysisInput struct {
	BeanName        string
	Country         string
	Region          string
	RoastType       string
	RoastDate       *time.Time
	GrinderName     string
	GrindSize       string
	BrewerName      string
	DoseGrams       float64
	YieldGrams      float64
	BrewTimeSeconds int
	Notes           string
}

// Ratio yield/dose del brew analizado.
func (in BrewAnalysisInput) Ratio() float64 {
	return brewing.BrewRatio(in.DoseGrams, in.YieldGrams)
}

// BrewAnalyzer define el puerto de salida hacia el servicio de análisis (LLM).
// Cualquier adaptador (OpenAI, Anthropic, Gemini, mock) debe implementar esta interfaz.
type BrewAnalyzer interface {
	// AnalyzeBrew devuelve sugerencias en texto libre en cuatro secciones:
	// análisis de extracción, ajuste de molienda, mejora de proceso y siguiente paso.
	// El contexto debe llevar un timeout; el caso de uso lo impone.
	AnalyzeBrew(ctx context.Context, in BrewAnalysisInput) (string, error)
}
