package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
)

// AnalysisUseCase orquesta el análisis de un brew por el LLM.
// Cada llamada lleva timeout y pasa por un limitador de tasa compartido por todo el proceso.
type AnalysisUseCase struct {
	analyzer ports.BrewAnalyzer
	limiter  *rate.Limiter
	timeout  time.Duration
}

// NewAnalysisUseCase construye el caso de uso. perMinute <= 0 desactiva el limitador.
// analyzer puede ser nil (sin proveedor configurado): toda llamada devuelve ErrAnalysisFailed.
func NewAnalysisUseCase(analyzer ports.BrewAnalyzer, timeout time.Duration, perMinute int) *AnalysisUseCase {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if perMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AnalysisUseCase{analyzer: analyzer, limiter: limiter, timeout: timeout}
}

// Analyze devuelve el texto de sugerencias para brew (con relaciones cargadas).
// Todo fallo se devuelve envuelto en domain.ErrAnalysisFailed.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, brew *entity.Brew) (string, error) {
	if uc.analyzer == nil {
		return "", fmt.Errorf("%w: proveedor de IA no configurado", domain.ErrAnalysisFailed)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if err := uc.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: límite de solicitudes: %v", domain.ErrAnalysisFailed, err)
	}
	text, err := uc.analyzer.AnalyzeBrew(ctx, analysisInput(brew))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: timeout", domain.ErrAnalysisFailed)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: respuesta vacía", domain.ErrAnalysisFailed)
	}
	return text, nil
}

func analysisInput(b *entity.Brew) ports.BrewAnalysisInput {
	in := ports.BrewAnalysisInput{
		RoastDate:       b.RoastDate,
		GrindSize:       b.GrindSize,
		DoseGrams:       b.Dose.InexactFloat64(),
		YieldGrams:      b.Yield.InexactFloat64(),
		BrewTimeSeconds: b.BrewTimeSeconds,
		Notes:           b.Notes,
	}
	if b.Bean != nil {
		in.BeanName = b.Bean.Name
		in.Country = b.Bean.Country
		in.Region = b.Bean.Region
		in.RoastType = b.Bean.RoastType
	}
	if b.Grinder != nil {
		in.GrinderName = b.Grinder.Name
	}
	if b.Brewer != nil {
		in.BrewerName = b.Brewer.Name
	}
	return in
}
