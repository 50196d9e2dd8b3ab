// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		offset float64
		want   int64
	}{
		{name: "truncated month", raw: "200209", offset: 0, want: 1030838400},
		{name: "positive offset", raw: "200209", offset: 2, want: 1030838400 + 7200},
		{name: "negative offset", raw: "200209", offset: -2, want: 1030838400 - 7200},
		{name: "fractional offset", raw: "200209", offset: 0.5, want: 1030838400 + 1800},
		{name: "explicit zone", raw: "19880523083000 +0300", offset: 0, want: 580368600},
		{name: "negative zone", raw: "19880523083000 -0130", offset: 0, want: 580348800 + 8*3600 + 30*60 + 5400},
		{name: "zone without space", raw: "19880523083000+0300", offset: 0, want: 580368600},
		{name: "utc designator", raw: "20240101000000 Z", offset: 0, want: 1704067200},
		{name: "year only", raw: "2024", offset: 0, want: 1704067200},
		{name: "full without zone", raw: "20240101010203", offset: 0, want: 1704067200 + 3723},
		{name: "surrounding spaces", raw: "  20240101  ", offset: 0, want: 1704067200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.raw, TimestampOptions{OffsetHours: tt.offset, Location: time.UTC})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimestampLocalZone(t *testing.T) {
	zone := time.FixedZone("X", 2*3600)
	got, err := ParseTimestamp("20240101000000", TimestampOptions{Location: zone})
	require.NoError(t, err)
	assert.Equal(t, int64(1704067200-7200), got)

	// An explicit zone wins over the configured location
	got, err = ParseTimestamp("20240101000000 +0000", TimestampOptions{Location: zone})
	require.NoError(t, err)
	assert.Equal(t, int64(1704067200), got)
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "202", "20240", "2024010100000", "20241301", "20240132", "20240101250000", "20240101000000 +03"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseTimestamp(raw, TimestampOptions{Location: time.UTC})
			require.ErrorIs(t, err, ErrInvalidTimestamp)
		})
	}
}
