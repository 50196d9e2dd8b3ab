// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ManuGH/catchup/internal/archive"
	"github.com/ManuGH/catchup/internal/catchup"
	"github.com/ManuGH/catchup/internal/epg"
	"github.com/ManuGH/catchup/internal/fsutil"
)

func runArchiveCLI(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("archive", stderr)
	var (
		configPath, playlistPath, guidePath, channel string
		asJSON                                       bool
	)
	fs.StringVar(&configPath, "config", "", "path to YAML configuration file")
	fs.StringVar(&playlistPath, "playlist", "", "playlist file")
	fs.StringVar(&guidePath, "xmltv", "", "XMLTV guide file")
	fs.StringVar(&channel, "channel", "", "channel title")
	fs.BoolVar(&asJSON, "json", false, "print programmes as JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if playlistPath == "" || guidePath == "" || channel == "" {
		fmt.Fprintln(stderr, "Error: -playlist, -xmltv and -channel are required")
		return 2
	}

	cfg, err := loadConfig(configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	svc := archive.New(cfg)
	defer writeMetrics(cfg)

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

	data, err := fsutil.ReadInput(guidePath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	guide, err := epg.ReadGuide(bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", guidePath, err)
		return 1
	}

	entries, err := svc.Programmes(ctx, ch, guide, time.Now())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			fmt.Fprintf(stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}
	for _, e := range entries {
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", catchup.FormatTime(e.Start), e.Title, e.Link.URL)
	}
	return 0
}
