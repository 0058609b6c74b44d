package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Brewlog-api/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg := config.FromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 30*time.Second, cfg.Cache.StaleTime())
	assert.Equal(t, 5*time.Minute, cfg.Cache.GCTime())
	assert.Equal(t, 2*time.Second, cfg.Retry.MaxElapsed())
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.False(t, cfg.DB.Enabled())
	assert.False(t, cfg.Storage.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestFromViper_VentanasIndependientes(t *testing.T) {
	v := viper.New()
	v.Set("CACHE_STALE_SECONDS", "10")
	v.Set("CACHE_GC_SECONDS", 600)
	cfg := config.FromViper(v)

	assert.Equal(t, 10*time.Second, cfg.Cache.StaleTime())
	assert.Equal(t, 10*time.Minute, cfg.Cache.GCTime())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"stale cero", func(c *config.Config) { c.Cache.StaleSeconds = 0 }},
		{"gc negativo", func(c *config.Config) { c.Cache.GCSeconds = -1 }},
		{"sin secret en producción", func(c *config.Config) { c.App.Env = "production"; c.JWT.Secret = "" }},
		{"proveedor desconocido", func(c *config.Config) { c.AI.Provider = "ollama" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.FromViper(viper.New())
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "brew", Password: "p@ss:word", DBName: "brewlog", SSLMode: "disable"}
	assert.Equal(t, "postgres://brew:p%40ss%3Aword@db:5432/brewlog?sslmode=disable", c.DSN())
	assert.True(t, c.Enabled())
}
