// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

import "errors"

var (
	// ErrMalformedInput is returned when the text lacks the #EXTM3U or #EXTINF markers.
	ErrMalformedInput = errors.New("m3u: malformed input (missing #EXTM3U or #EXTINF)")

	// ErrEmptyResult is returned when the markers are present but no channel block was usable.
	ErrEmptyResult = errors.New("m3u: playlist contains no channels")
)
