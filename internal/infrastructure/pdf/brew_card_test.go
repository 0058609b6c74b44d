package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Brewlog-api/internal/domain/entity"
)

func TestRenderBrewCard_GeneraPDF(t *testing.T) {
	rd := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	brew := &entity.Brew{
		ID:              "b-1",
		BrewedAt:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		RoastDate:       &rd,
		GrindSize:       "24 clicks",
		BrewTimeSeconds: 185,
		Dose:            decimal.NewFromInt(15),
		Yield:           decimal.NewFromInt(250),
		Notes:           "floral\n\ncuerpo ligero",
		AISuggestions:   "1. Extraction Analysis:\n   - ok",
		Bean:            &entity.Bean{Name: "Yirgacheffe", Country: "Etiopía"},
		Grinder:         &entity.Grinder{Name: "Comandante"},
	}

	out, err := NewBrewCardGenerator().RenderBrewCard(brew)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderBrewCard_SinRelaciones(t *testing.T) {
	out, err := NewBrewCardGenerator().RenderBrewCard(&entity.Brew{ID: "b-2"})

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderBrewCard_Nil(t *testing.T) {
	_, err := NewBrewCardGenerator().RenderBrewCard(nil)
	assert.Error(t, err)
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "3:05", formatSeconds(185))
	assert.Equal(t, "0:30", formatSeconds(30))
	assert.Equal(t, "—", formatSeconds(0))
}
