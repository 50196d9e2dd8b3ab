// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"fmt"
	"time"

	"github.com/ManuGH/catchup/internal/catchup"
)

// Times returns the start and stop of p as wall-clock times in the options' location.
func Times(p Programme, opts TimestampOptions) (time.Time, time.Time, error) {
	start, err := ParseTimestamp(p.Start, opts)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("programme start: %w", err)
	}
	stop, err := ParseTimestamp(p.Stop, opts)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("programme stop: %w", err)
	}
	loc := opts.location()
	return time.Unix(start, 0).In(loc), time.Unix(stop, 0).In(loc), nil
}

// Window renders the programme bounds in the format archive URL synthesis expects.
func Window(p Programme, opts TimestampOptions) (start, stop string, err error) {
	st, et, err := Times(p, opts)
	if err != nil {
		return "", "", err
	}
	return catchup.FormatTime(st), catchup.FormatTime(et), nil
}

// CatchupTime converts a single XMLTV timestamp into catchup.TimeLayout.
func CatchupTime(raw string, opts TimestampOptions) (string, error) {
	ts, err := ParseTimestamp(raw, opts)
	if err != nil {
		return "", err
	}
	return catchup.FormatTime(time.Unix(ts, 0).In(opts.location())), nil
}
