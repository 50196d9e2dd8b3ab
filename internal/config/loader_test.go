// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/catchup/internal/m3u"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvLogLevel, EnvUDPProxy, EnvEPGOffset, EnvLabelAllChannels, EnvLabelMovies, EnvMetricsTextfile} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewLoader("", "1.2.3").Load()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "All channels", cfg.Labels.AllChannels)
	assert.Equal(t, "Movies", cfg.Labels.Movies)
	assert.Zero(t, cfg.EPGOffset)
	assert.Empty(t, cfg.UDPProxy)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.yaml", `
logLevel: debug
udpProxy: http://file-proxy:4022
epgOffset: 1.5
labels:
  allchannels: Alle Kanäle
  movies: Filme
metricsTextfile: /tmp/catchup.prom
`)
	t.Setenv(EnvUDPProxy, "http://env-proxy:4022")
	t.Setenv(EnvLabelMovies, "Kino")

	l := NewLoader(path, "dev")
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://env-proxy:4022", cfg.UDPProxy)
	assert.InDelta(t, 1.5, cfg.EPGOffset, 1e-9)
	assert.Equal(t, "Alle Kanäle", cfg.Labels.AllChannels)
	assert.Equal(t, "Kino", cfg.Labels.Movies)
	assert.Equal(t, "/tmp/catchup.prom", cfg.MetricsTextfile)

	assert.Contains(t, l.ConsumedEnvKeys, EnvUDPProxy)
	assert.Contains(t, l.ConsumedEnvKeys, EnvEPGOffset)
}

func TestLoadInvalidEnvFloatFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvEPGOffset, "two")

	cfg, err := NewLoader("", "").Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.EPGOffset)
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)

	t.Run("unknown field", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "logLevel: info\nbogus: 1\n")
		_, err := NewLoader(path, "").Load()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownConfigField), "got %v", err)
	})

	t.Run("multiple documents", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "logLevel: info\n---\nlogLevel: debug\n")
		_, err := NewLoader(path, "").Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple documents")
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := writeConfig(t, "config.json", "{}")
		_, err := NewLoader(path, "").Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"), "").Load()
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeConfig(t, "config.yml", "")
		cfg, err := NewLoader(path, "").Load()
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "epgOffset: 30\n")
		_, err := NewLoader(path, "").Load()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})
}

func TestValidate(t *testing.T) {
	base := Defaults()

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "defaults", mutate: func(*AppConfig) {}},
		{name: "empty level", mutate: func(c *AppConfig) { c.LogLevel = "" }, wantErr: "logLevel"},
		{name: "bad level", mutate: func(c *AppConfig) { c.LogLevel = "loud" }, wantErr: "logLevel"},
		{name: "upper level", mutate: func(c *AppConfig) { c.LogLevel = "WARN" }},
		{name: "proxy https", mutate: func(c *AppConfig) { c.UDPProxy = "https://proxy" }},
		{name: "proxy relative", mutate: func(c *AppConfig) { c.UDPProxy = "proxy:4022" }, wantErr: "udpProxy"},
		{name: "proxy udp", mutate: func(c *AppConfig) { c.UDPProxy = "udp://proxy" }, wantErr: "udpProxy"},
		{name: "offset bound", mutate: func(c *AppConfig) { c.EPGOffset = -24 }},
		{name: "offset too large", mutate: func(c *AppConfig) { c.EPGOffset = 24.5 }, wantErr: "epgOffset"},
		{name: "blank label", mutate: func(c *AppConfig) { c.Labels.Movies = "  " }, wantErr: "labels.movies"},
		{name: "missing label", mutate: func(c *AppConfig) { c.Labels.AllChannels = "" }, wantErr: "labels.allchannels"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseOptions(t *testing.T) {
	cfg := Defaults()
	cfg.UDPProxy = "http://proxy:4022"
	cfg.Labels = Labels{AllChannels: "Alle", Movies: ""}

	opts := cfg.ParseOptions()
	assert.Equal(t, "http://proxy:4022", opts.UDPProxy)
	require.NotNil(t, opts.Label)
	assert.Equal(t, "Alle", opts.Label(m3u.LabelAllChannels))
	assert.Equal(t, "Movies", opts.Label(m3u.LabelMovies))
	assert.Equal(t, "other", opts.Label("other"))
}
