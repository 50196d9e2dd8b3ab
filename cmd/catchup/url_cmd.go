// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ManuGH/catchup/internal/archive"
	"github.com/ManuGH/catchup/internal/epg"
)

func runURLCLI(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("url", stderr)
	var (
		configPath, playlistPath, channel string
		start, stop, catchupID            string
		wire                              bool
	)
	fs.StringVar(&configPath, "config", "", "path to YAML configuration file")
	fs.StringVar(&playlistPath, "playlist", "", "playlist file")
	fs.StringVar(&channel, "channel", "", "channel title")
	fs.StringVar(&start, "start", "", "programme start (dd.mm.yyyy HH:MM:SS or XMLTV)")
	fs.StringVar(&stop, "stop", "", "programme stop (dd.mm.yyyy HH:MM:SS or XMLTV)")
	fs.StringVar(&catchupID, "id", "", "catchup-id of the programme")
	fs.BoolVar(&wire, "wire", false, "print the URL with user-agent/referer sentinels")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if playlistPath == "" || channel == "" || start == "" || stop == "" {
		fmt.Fprintln(stderr, "Error: -playlist, -channel, -start and -stop are required")
		return 2
	}

	cfg, err := loadConfig(configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	tsOpts := epg.TimestampOptions{OffsetHours: cfg.EPGOffset}
	if start, err = parseTimeArg(start, tsOpts); err != nil {
		fmt.Fprintf(stderr, "Error: -start: %v\n", err)
		return 2
	}
	if stop, err = parseTimeArg(stop, tsOpts); err != nil {
		fmt.Fprintf(stderr, "Error: -stop: %v\n", err)
		return 2
	}

	svc := archive.New(cfg)
	res, err := loadPlaylist(ctx, svc, playlistPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	ch, ok := res.Lookup(channel)
	if !ok {
		fmt.Fprintf(stderr, "Error: channel %q not found in %s\n", channel, playlistPath)
		return 1
	}
	link, err := svc.ArchiveURL(ctx, ch, start, stop, catchupID)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	writeMetrics(cfg)

	if wire {
		fmt.Fprintln(stdout, link.WireURL)
	} else {
		fmt.Fprintln(stdout, link.URL)
	}
	return 0
}
