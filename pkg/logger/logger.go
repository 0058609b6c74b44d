// Package logger arma el zerolog de la aplicación: un logger raíz y subloggers por componente
// (cache, usecase, http, ...) con nivel propio opcional, más el logger de cada petición HTTP.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env   string    // development -> consola legible; production -> JSON
	Level string    // trace, debug, info, warn, error
	Out   io.Writer // nil = stdout
	// Levels nivel por componente, formato "cache=debug,ai=warn". Vacío = todos con Level.
	Levels string
}

// Logger logger raíz más los niveles por componente.
type Logger struct {
	zl     zerolog.Logger
	levels map[string]zerolog.Level
}

// New crea el logger. Un nivel desconocido cae a info; una entrada inválida de Levels se ignora
// y se avisa una vez en el propio log.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Out != nil {
		w = cfg.Out
	}
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	base, err := ParseLevel(cfg.Level)
	if err != nil {
		base = zerolog.InfoLevel
	}
	zl := zerolog.New(w).Level(base).With().Timestamp().Logger()
	log.Logger = zl

	levels, bad := ParseLevels(cfg.Levels)
	for _, entry := range bad {
		zl.Warn().Str("entry", entry).Msg("LOG_LEVELS: entrada ignorada")
	}
	return &Logger{zl: zl, levels: levels}
}

// ParseLevel nivel de zerolog por nombre; "" es info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel, fmt.Errorf("nivel de log desconocido %q", s)
	}
	return lvl, nil
}

// ParseLevels interpreta "componente=nivel" separados por coma. Devuelve además las entradas
// que no pudo interpretar.
func ParseLevels(s string) (map[string]zerolog.Level, []string) {
	out := map[string]zerolog.Level{}
	var bad []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, lvlName, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			bad = append(bad, part)
			continue
		}
		lvl, err := ParseLevel(lvlName)
		if err != nil {
			bad = append(bad, part)
			continue
		}
		out[name] = lvl
	}
	return out, bad
}

// Eventos del logger raíz.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Component sublogger con el campo "component" y el nivel configurado para él en Levels.
func (l *Logger) Component(name string) zerolog.Logger {
	zl := l.zl.With().Str("component", name).Logger()
	if lvl, ok := l.levels[name]; ok {
		zl = zl.Level(lvl)
	}
	return zl
}

// Request sublogger de una petición HTTP, guardado en ctx para que las capas de abajo lo
// recuperen con FromContext.
func Request(ctx context.Context, base zerolog.Logger, requestID, method, path string) context.Context {
	zl := base.With().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Logger()
	return zl.WithContext(ctx)
}

// FromContext logger de la petición en curso; fuera de una petición, el logger global.
func FromContext(ctx context.Context) *zerolog.Logger {
	if zl := zerolog.Ctx(ctx); zl.GetLevel() != zerolog.Disabled {
		return zl
	}
	return &log.Logger
}
