package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Brewlog-api/pkg/logger"
)

func TestNew_JSONFueraDeDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	cl := l.Component("cache")
	cl.Info().Str("key", "u1/beans").Msg("hit")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "cache", line["component"])
	assert.Equal(t, "u1/beans", line["key"])
	assert.Equal(t, "hit", line["message"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})
	l.Info().Msg("no aparece")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("aparece")
	assert.NotZero(t, buf.Len())
}

func TestComponent_NivelPropio(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Levels: "cache=debug, ai=error", Out: &buf})

	c := l.Component("cache")
	c.Debug().Msg("cache en debug")
	assert.Contains(t, buf.String(), "cache en debug")

	buf.Reset()
	ai := l.Component("ai")
	ai.Warn().Msg("ai filtrado")
	assert.Zero(t, buf.Len())

	buf.Reset()
	other := l.Component("brews")
	other.Info().Msg("hereda warn")
	assert.Zero(t, buf.Len())
}

func TestParseLevels_EntradasInvalidas(t *testing.T) {
	levels, bad := logger.ParseLevels("cache=debug,ruido,=info,ai=verboso,,http=WARN")

	assert.Equal(t, map[string]zerolog.Level{"cache": zerolog.DebugLevel, "http": zerolog.WarnLevel}, levels)
	assert.Equal(t, []string{"ruido", "=info", "ai=verboso"}, bad)
}

func TestParseLevel(t *testing.T) {
	lvl, err := logger.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = logger.ParseLevel(" Debug ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = logger.ParseLevel("verboso")
	assert.Error(t, err)
}

func TestRequest_LoggerEnElContexto(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	ctx := logger.Request(context.Background(), base, "req-1", "POST", "/api/brews")

	logger.FromContext(ctx).Error().Msg("falló")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "POST", line["method"])
	assert.Equal(t, "/api/brews", line["path"])
}

func TestFromContext_SinPeticionUsaElGlobal(t *testing.T) {
	var buf bytes.Buffer
	logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	logger.FromContext(context.Background()).Info().Msg("global")
	assert.Contains(t, buf.String(), `"message":"global"`)
}
