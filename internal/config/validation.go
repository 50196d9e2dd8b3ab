// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// MaxEPGOffset bounds the guide offset in hours.
const MaxEPGOffset = 24

// Validate reports the first violation in cfg, wrapped with ErrInvalidConfig.
func Validate(cfg AppConfig) error {
	if cfg.LogLevel == "" {
		return fmt.Errorf("%w: logLevel: must not be empty", ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		return fmt.Errorf("%w: logLevel: %q is not a log level", ErrInvalidConfig, cfg.LogLevel)
	}
	if cfg.UDPProxy != "" {
		u, err := url.Parse(cfg.UDPProxy)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: udpProxy: %q must be an absolute http(s) URL", ErrInvalidConfig, cfg.UDPProxy)
		}
	}
	if math.IsNaN(cfg.EPGOffset) || math.Abs(cfg.EPGOffset) > MaxEPGOffset {
		return fmt.Errorf("%w: epgOffset: %v is outside [-%d, %d]", ErrInvalidConfig, cfg.EPGOffset, MaxEPGOffset, MaxEPGOffset)
	}
	if strings.TrimSpace(cfg.Labels.AllChannels) == "" {
		return fmt.Errorf("%w: labels.allchannels: must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.Labels.Movies) == "" {
		return fmt.Errorf("%w: labels.movies: must not be empty", ErrInvalidConfig)
	}
	return nil
}
