// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package catchup builds archive (timeshift) playback URLs from per-channel
// catchup settings and a programme time window.
package catchup

import (
	"strconv"
	"strings"
	"time"

	"github.com/ManuGH/catchup/internal/m3u"
)

// Mode is a catchup URL convention. Values are case-sensitive.
type Mode string

const (
	ModeDefault      Mode = "default"
	ModeAppend       Mode = "append"
	ModeShift        Mode = "shift"
	ModeFlussonic    Mode = "flussonic"
	ModeFlussonicHLS Mode = "flussonic-hls"
	ModeFlussonicTS  Mode = "flussonic-ts"
	ModeFS           Mode = "fs"
	ModeXC           Mode = "xc"
)

// IsFlussonic reports whether m belongs to the Flussonic family.
func (m Mode) IsFlussonic() bool {
	switch m {
	case ModeFlussonic, ModeFlussonicHLS, ModeFlussonicTS, ModeFS:
		return true
	}
	return false
}

// Config is the catchup view of a channel.
type Config struct {
	Mode   Mode   `json:"mode"`
	Source string `json:"source"`
	Days   string `json:"days"`
}

// FromChannel extracts the catchup settings of a parsed channel.
func FromChannel(ch m3u.Channel) Config {
	return Config{
		Mode:   Mode(ch.Catchup),
		Source: ch.CatchupSource,
		Days:   ch.CatchupDays,
	}
}

// Normalize applies defaults and derives the effective mode: without a source
// only Flussonic and XC can build URLs on their own, everything else falls
// back to shift; a relative source is always appended to the stream URL.
func Normalize(c Config) Config {
	if c.Mode == "" {
		c.Mode = ModeDefault
	}
	if c.Days == "" {
		c.Days = m3u.DefaultCatchupDays
	}

	switch {
	case c.Source == "":
		if !c.Mode.IsFlussonic() && c.Mode != ModeXC {
			c.Mode = ModeShift
		}
	case !isAbsoluteHTTP(c.Source):
		c.Mode = ModeAppend
	}
	return c
}

func isAbsoluteHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// DaysInt returns the archive depth in days. Unparseable or negative values
// yield the default of one day.
func (c Config) DaysInt() int {
	d, err := strconv.Atoi(strings.TrimSpace(c.Days))
	if err != nil || d < 0 {
		return 1
	}
	return d
}

// Available reports whether a programme starting at start can be replayed at now.
func (c Config) Available(start, now time.Time) bool {
	if !start.Before(now) {
		return false
	}
	return now.Sub(start) <= time.Duration(c.DaysInt())*24*time.Hour
}
