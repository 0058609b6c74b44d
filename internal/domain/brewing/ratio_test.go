package brewing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Brewlog-api/internal/domain/brewing"
)

func TestBrewRatio(t *testing.T) {
	assert.Equal(t, 2.0, brewing.BrewRatio(18, 36))
	assert.InDelta(t, 16.0, brewing.BrewRatio(15, 240), 1e-9)
}

func TestBrewRatio_DosisCero(t *testing.T) {
	assert.NotPanics(t, func() { brewing.BrewRatio(0, 36) })
	assert.True(t, math.IsInf(brewing.BrewRatio(0, 36), 1))
	assert.True(t, math.IsInf(brewing.BrewRatio(0, 0), 1), "0/0 también debe ser no finito, nunca NaN")
	assert.Equal(t, brewing.RatioPlaceholder, brewing.FormatRatio(brewing.BrewRatio(0, 36)))
}

func TestFormatRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{"espresso", brewing.BrewRatio(18, 36), "1:2.0"},
		{"filtro", brewing.BrewRatio(15, 250), "1:16.7"},
		{"yield cero", brewing.BrewRatio(15, 0), brewing.RatioPlaceholder},
		{"infinito", math.Inf(1), brewing.RatioPlaceholder},
		{"nan", math.NaN(), brewing.RatioPlaceholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, brewing.FormatRatio(tt.ratio))
		})
	}
}
