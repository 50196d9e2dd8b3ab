// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/catchup/internal/archive"
	"github.com/ManuGH/catchup/internal/config"
	"github.com/ManuGH/catchup/internal/fsutil"
	"github.com/ManuGH/catchup/internal/log"
	"github.com/ManuGH/catchup/internal/m3u"
	"github.com/ManuGH/catchup/internal/playlist"
	"github.com/ManuGH/catchup/internal/watch"
)

const maxParallelParses = 4

type parseOptions struct {
	paths  []string
	output string
	asJSON bool
}

type parsedPlaylist struct {
	Path     string        `json:"path"`
	EPGURL   string        `json:"epg_url"`
	Channels []m3u.Channel `json:"channels"`
}

func runParseCLI(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("parse", stderr)
	var (
		configPath string
		opts       parseOptions
		watchMode  bool
	)
	fs.StringVar(&configPath, "config", "", "path to YAML configuration file")
	fs.StringVar(&opts.output, "o", "", "write the normalized playlist to this file (single playlist only)")
	fs.BoolVar(&opts.asJSON, "json", false, "print parsed channels as JSON")
	fs.BoolVar(&watchMode, "watch", false, "re-parse when the playlist changes (single playlist only)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	opts.paths = fs.Args()
	if len(opts.paths) == 0 {
		fmt.Fprintln(stderr, "Error: at least one playlist is required")
		return 2
	}
	if (opts.output != "" || watchMode) && len(opts.paths) != 1 {
		fmt.Fprintln(stderr, "Error: -o and -watch take exactly one playlist")
		return 2
	}

	cfg, err := loadConfig(configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	svc := archive.New(cfg)

	if err := parseOnce(ctx, svc, cfg, opts, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if !watchMode {
			return 1
		}
	}
	if !watchMode {
		return 0
	}

	w, err := watch.New(opts.paths[0], watch.DefaultDebounce, func(ctx context.Context) error {
		return parseOnce(ctx, svc, cfg, opts, stdout)
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := w.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseOnce(ctx context.Context, svc *archive.Service, cfg config.AppConfig, opts parseOptions, stdout io.Writer) error {
	defer writeMetrics(cfg)

	results := make([]parsedPlaylist, len(opts.paths))
	parsed := make([]m3u.ParseResult, len(opts.paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelParses)
	for i, path := range opts.paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := loadPlaylist(gctx, svc, path)
			if err != nil {
				return err
			}
			parsed[i] = res
			results[i] = parsedPlaylist{Path: path, EPGURL: res.WireEPGURL(), Channels: res.Channels}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.output != "" {
		err := fsutil.WriteFileAtomic(opts.output, func(w io.Writer) error {
			return playlist.WriteM3U(w, parsed[0])
		})
		if err != nil {
			return err
		}
		logger := log.WithComponentFromContext(ctx, "cli")
		logger.Info().
			Str(log.FieldEvent, "playlist.written").
			Str(log.FieldPath, opts.output).
			Int(log.FieldChannels, len(parsed[0].Channels)).
			Msg("normalized playlist written")
	}

	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		fmt.Fprintf(stdout, "%s: %d channels", r.Path, len(r.Channels))
		if r.EPGURL != "" {
			fmt.Fprintf(stdout, ", epg %s", r.EPGURL)
		}
		fmt.Fprintln(stdout)
	}
	return nil
}
