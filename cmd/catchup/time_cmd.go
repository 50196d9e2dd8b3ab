// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/ManuGH/catchup/internal/catchup"
	"github.com/ManuGH/catchup/internal/epg"
	"github.com/ManuGH/catchup/internal/metrics"
)

func runNowCLI(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("now", stderr)
	utc := fs.Bool("utc", false, "render compound fields in UTC instead of local time")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: exactly one URL template is required")
		return 2
	}

	e := catchup.Expander{}
	if *utc {
		e.Location = time.UTC
	}
	fmt.Fprintln(stdout, e.ExpandNow(fs.Arg(0)))
	return 0
}

func runEPGTimeCLI(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("epgtime", stderr)
	offset := fs.Float64("offset", 0, "hours added to every timestamp")
	utc := fs.Bool("utc", false, "read timestamps without zone as UTC instead of local time")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: at least one timestamp is required")
		return 2
	}

	opts := epg.TimestampOptions{OffsetHours: *offset}
	if *utc {
		opts.Location = time.UTC
	}
	code := 0
	for _, raw := range fs.Args() {
		ts, err := epg.ParseTimestamp(raw, opts)
		if err != nil {
			metrics.IncEPGTimestampError()
			fmt.Fprintf(stderr, "Error: %v\n", err)
			code = 1
			continue
		}
		fmt.Fprintln(stdout, ts)
	}
	return code
}
