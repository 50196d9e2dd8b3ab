// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRunID     = "run_id"
	FieldEvent     = "event"
	FieldComponent = "component"

	// Playlist fields
	FieldPlaylistPath = "playlist_path"
	FieldChannel      = "channel"
	FieldChannels     = "channels"
	FieldEPGURLs      = "epg_urls"
	FieldOutcome      = "outcome"

	// Catchup fields
	FieldMode     = "mode"
	FieldStrategy = "strategy"
	FieldStart    = "start"
	FieldStop     = "stop"

	// Path / URL fields
	FieldPath = "path"
	FieldURL  = "url"
)
