// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ManuGH/catchup/internal/archive"
	"github.com/ManuGH/catchup/internal/catchup"
	"github.com/ManuGH/catchup/internal/config"
	"github.com/ManuGH/catchup/internal/epg"
	"github.com/ManuGH/catchup/internal/fsutil"
	"github.com/ManuGH/catchup/internal/log"
	"github.com/ManuGH/catchup/internal/m3u"
	"github.com/ManuGH/catchup/internal/metrics"
)

// loadConfig resolves the configuration and re-configures logging from it.
func loadConfig(path string, stderr io.Writer) (config.AppConfig, error) {
	cfg, err := config.NewLoader(strings.TrimSpace(path), version).Load()
	if err != nil {
		return cfg, err
	}
	log.Configure(log.Config{Level: cfg.LogLevel, Output: stderr, Version: cfg.Version})

	source := "env+defaults"
	if path != "" {
		source = "file"
	}
	logger := log.WithComponent("cli")
	logger.Debug().
		Str(log.FieldEvent, "config.loaded").
		Str("source", source).
		Str(log.FieldPath, path).
		Msg("configuration loaded")
	return cfg, nil
}

// loadPlaylist reads and parses one playlist file.
func loadPlaylist(ctx context.Context, svc *archive.Service, path string) (m3u.ParseResult, error) {
	data, err := fsutil.ReadInput(path)
	if err != nil {
		return m3u.ParseResult{}, err
	}
	res, err := svc.LoadPlaylist(log.ContextWithPlaylist(ctx, path), string(data))
	if err != nil {
		return m3u.ParseResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// parseTimeArg accepts catchup.TimeLayout or an XMLTV timestamp and returns
// the former, in local time.
func parseTimeArg(v string, opts epg.TimestampOptions) (string, error) {
	v = strings.TrimSpace(v)
	if len(v) == len(catchup.TimeLayout) {
		if _, err := time.ParseInLocation(catchup.TimeLayout, v, time.Local); err == nil {
			return v, nil
		}
	}
	s, err := epg.CatchupTime(v, opts)
	if err != nil {
		return "", fmt.Errorf("time %q: want %q or an XMLTV timestamp", v, catchup.TimeLayout)
	}
	return s, nil
}

func writeMetrics(cfg config.AppConfig) {
	if cfg.MetricsTextfile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
		logger := log.WithComponent("cli")
		logger.Warn().
			Err(err).
			Str(log.FieldEvent, "metrics.write_failed").
			Str(log.FieldPath, cfg.MetricsTextfile).
			Msg("failed to write metrics textfile")
	}
}

// parseFlags parses args into fs. When ok is false the caller returns code:
// 0 for -h, 2 for any other usage error.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("catchup "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}
