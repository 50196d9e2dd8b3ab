// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

// Default attribute values applied when an #EXTINF line omits them.
const (
	DefaultCatchup     = "default"
	DefaultCatchupDays = "1"
)

// Channel represents a single channel block from the playlist.
//
// URL holds the plain stream URL (after multicast proxy rewriting). The
// user-agent and referer overrides are kept separately; use WireURL for the
// legacy sentinel-augmented form.
type Channel struct {
	Title         string `json:"title"`
	TvgName       string `json:"tvg_name"`
	TvgID         string `json:"tvg_id"`
	TvgLogo       string `json:"tvg_logo"`
	Group         string `json:"group"`
	TvgURL        string `json:"tvg_url"`
	Catchup       string `json:"catchup"`
	CatchupSource string `json:"catchup_source"`
	CatchupDays   string `json:"catchup_days"`
	UserAgent     string `json:"user_agent,omitempty"`
	Referer       string `json:"referer,omitempty"`
	URL           string `json:"url"`
	Raw           string `json:"-"` // Raw EXTINF line
}

// WireURL returns the stream URL with user-agent and referer tunnelled through
// the sentinel encoding understood by existing consumers.
func (c Channel) WireURL() string {
	return EncodeWireURL(c.URL, c.UserAgent, c.Referer)
}

// EPGSource is the EPG location information gathered across one parse.
type EPGSource struct {
	// Declared is the URL from the #EXTM3U header, if any.
	Declared string `json:"declared,omitempty"`
	// Channels lists distinct non-empty per-channel tvg-url values in first-seen order.
	Channels []string `json:"channels,omitempty"`
}

// URLs returns every EPG URL the playlist points at, header URL first.
func (s EPGSource) URLs() []string {
	if s.Declared != "" {
		return []string{s.Declared}
	}
	return append([]string(nil), s.Channels...)
}

// ParseResult is the outcome of one Parse call.
type ParseResult struct {
	Channels []Channel `json:"channels"`
	EPG      EPGSource `json:"epg"`
}

// WireEPGURL resolves the playlist EPG URL in its legacy single-string form:
// the header URL if declared, otherwise the multi-URL sentinel aggregate of the
// per-channel URLs, otherwise empty.
func (r ParseResult) WireEPGURL() string {
	if r.EPG.Declared != "" {
		return r.EPG.Declared
	}
	return EncodeEPGURLs(r.EPG.Channels)
}

// Lookup returns the channel with the given title.
func (r ParseResult) Lookup(title string) (Channel, bool) {
	for _, ch := range r.Channels {
		if ch.Title == title {
			return ch, true
		}
	}
	return Channel{}, false
}
