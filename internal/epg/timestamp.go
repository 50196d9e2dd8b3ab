// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimestamp is returned for values that are not XMLTV timestamps.
var ErrInvalidTimestamp = errors.New("epg: invalid xmltv timestamp")

// YYYY[MM[DD[hh[mm[ss]]]]] with an optional " ±hhmm" zone
var timestampRe = regexp.MustCompile(`^(\d{4}(?:\d{2}){0,5})(?:\s*([+-]\d{4}|Z))?$`)

// TimestampOptions controls XMLTV timestamp interpretation.
type TimestampOptions struct {
	// OffsetHours shifts every parsed time, e.g. for guides published in the wrong zone.
	OffsetHours float64
	// Location is used for timestamps without zone suffix. Nil means time.Local.
	Location *time.Location
}

func (o TimestampOptions) location() *time.Location {
	if o.Location != nil {
		return o.Location
	}
	return time.Local
}

// ParseTimestamp converts an XMLTV timestamp such as "20240101203000 +0100"
// to epoch seconds. Truncated values ("200209") default the missing trailing
// fields to the start of the period.
func ParseTimestamp(raw string, opts TimestampOptions) (int64, error) {
	t, err := parseTime(raw, opts.location())
	if err != nil {
		return 0, err
	}
	return t.Unix() + int64(math.Round(opts.OffsetHours*3600)), nil
}

func parseTime(raw string, loc *time.Location) (time.Time, error) {
	m := timestampRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
	}
	digits, zone := m[1], m[2]

	// year, month, day, hour, minute, second
	parts := [6]int{0, 1, 1, 0, 0, 0}
	parts[0], _ = strconv.Atoi(digits[:4])
	for i, pos := 1, 4; pos < len(digits); i, pos = i+1, pos+2 {
		parts[i], _ = strconv.Atoi(digits[pos : pos+2])
	}

	if zone != "" {
		loc = zoneLocation(zone)
	}
	t := time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, loc)
	if t.Year() != parts[0] || int(t.Month()) != parts[1] || t.Day() != parts[2] ||
		t.Hour() != parts[3] || t.Minute() != parts[4] || t.Second() != parts[5] {
		return time.Time{}, fmt.Errorf("%w: %q out of range", ErrInvalidTimestamp, raw)
	}
	return t, nil
}

func zoneLocation(zone string) *time.Location {
	if zone == "Z" {
		return time.UTC
	}
	hh, _ := strconv.Atoi(zone[1:3])
	mm, _ := strconv.Atoi(zone[3:5])
	offset := hh*3600 + mm*60
	if zone[0] == '-' {
		offset = -offset
	}
	return time.FixedZone(zone, offset)
}
