// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command catchup parses IPTV playlists and builds archive (catch-up) URLs.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/ManuGH/catchup/internal/log"
)

var (
	version   = "v0.1.0"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code:
// 0 on success, 1 on runtime or validation errors, 2 on usage errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	// Safe defaults until a config file is loaded
	log.Configure(log.Config{Level: "info", Output: stderr, Version: version})
	ctx = log.ContextWithRunID(ctx, uuid.NewString())

	switch args[0] {
	case "parse":
		return runParseCLI(ctx, args[1:], stdout, stderr)
	case "url":
		return runURLCLI(ctx, args[1:], stdout, stderr)
	case "now":
		return runNowCLI(args[1:], stdout, stderr)
	case "epgtime":
		return runEPGTimeCLI(args[1:], stdout, stderr)
	case "archive":
		return runArchiveCLI(ctx, args[1:], stdout, stderr)
	case "config":
		return runConfigCLI(args[1:], stdout, stderr)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "%s (commit: %s, built: %s)\n", version, commit, buildDate)
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  catchup parse [-config f] [-o out.m3u] [-json] [-watch] playlist...")
	fmt.Fprintln(w, "  catchup url [-config f] -playlist f -channel title -start S -stop S [-id X] [-wire]")
	fmt.Fprintln(w, "  catchup now [-utc] URL")
	fmt.Fprintln(w, "  catchup epgtime [-offset h] [-utc] TIMESTAMP...")
	fmt.Fprintln(w, "  catchup archive [-config f] -playlist f -xmltv g -channel title [-json]")
	fmt.Fprintln(w, "  catchup config validate [--file|-f config.yaml]")
	fmt.Fprintln(w, "  catchup config dump [--file|-f config.yaml] [--format=yaml|json]")
	fmt.Fprintln(w, "  catchup version")
}
