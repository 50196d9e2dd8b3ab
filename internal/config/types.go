// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "github.com/ManuGH/catchup/internal/m3u"

// Environment variable names.
const (
	EnvLogLevel         = "CATCHUP_LOG_LEVEL"
	EnvUDPProxy         = "CATCHUP_UDP_PROXY"
	EnvEPGOffset        = "CATCHUP_EPG_OFFSET"
	EnvLabelAllChannels = "CATCHUP_LABEL_ALLCHANNELS"
	EnvLabelMovies      = "CATCHUP_LABEL_MOVIES"
	EnvMetricsTextfile  = "CATCHUP_METRICS_TEXTFILE"
)

// AppConfig is the resolved configuration.
type AppConfig struct {
	Version         string  `json:"version"`
	LogLevel        string  `json:"logLevel"`
	UDPProxy        string  `json:"udpProxy,omitempty"`
	EPGOffset       float64 `json:"epgOffset"`
	Labels          Labels  `json:"labels"`
	MetricsTextfile string  `json:"metricsTextfile,omitempty"`
}

// Labels localizes the synthetic group names of the playlist parser.
type Labels struct {
	AllChannels string `json:"allchannels"`
	Movies      string `json:"movies"`
}

// Func returns a label lookup for m3u.Options. Unset labels fall back to
// m3u.DefaultLabel.
func (l Labels) Func() m3u.LabelFunc {
	return func(key string) string {
		switch {
		case key == m3u.LabelAllChannels && l.AllChannels != "":
			return l.AllChannels
		case key == m3u.LabelMovies && l.Movies != "":
			return l.Movies
		}
		return m3u.DefaultLabel(key)
	}
}

// ParseOptions returns the playlist parser options derived from cfg.
func (cfg AppConfig) ParseOptions() m3u.Options {
	return m3u.Options{UDPProxy: cfg.UDPProxy, Label: cfg.Labels.Func()}
}

// FileConfig is the on-disk YAML schema. Pointer fields distinguish
// "not set" from zero values.
type FileConfig struct {
	LogLevel        string      `yaml:"logLevel,omitempty"`
	UDPProxy        string      `yaml:"udpProxy,omitempty"`
	EPGOffset       *float64    `yaml:"epgOffset,omitempty"`
	Labels          *FileLabels `yaml:"labels,omitempty"`
	MetricsTextfile string      `yaml:"metricsTextfile,omitempty"`
}

// FileLabels is the labels section of FileConfig.
type FileLabels struct {
	AllChannels string `yaml:"allchannels,omitempty"`
	Movies      string `yaml:"movies,omitempty"`
}
