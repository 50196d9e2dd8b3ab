// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

import "strings"

// Sentinels of the legacy string encodings. They must stay bit-exact.
const (
	AuthSeparator  = "^^^^^^^^^^"
	AuthTerminator = "@#@"

	authUserAgent = "useragent="
	authReferer   = "referer="

	MultiEPGPrefix    = "^^::MULTIPLE::^^"
	MultiEPGSeparator = ":::^^^:::"
)

// EncodeWireURL appends the user-agent and referer sentinels to rawURL,
// user-agent first. Empty values are omitted.
func EncodeWireURL(rawURL, userAgent, referer string) string {
	var b strings.Builder
	b.WriteString(rawURL)
	if userAgent != "" {
		b.WriteString(AuthSeparator + authUserAgent + userAgent + AuthTerminator)
	}
	if referer != "" {
		b.WriteString(AuthSeparator + authReferer + referer + AuthTerminator)
	}
	return b.String()
}

// DecodeWireURL splits a sentinel-augmented URL back into its parts.
// A URL without sentinels is returned as-is with empty auth values.
func DecodeWireURL(wire string) (rawURL, userAgent, referer string) {
	parts := strings.Split(wire, AuthSeparator)
	rawURL = parts[0]
	for _, part := range parts[1:] {
		part = strings.TrimSuffix(part, AuthTerminator)
		switch {
		case strings.HasPrefix(part, authUserAgent):
			userAgent = strings.TrimPrefix(part, authUserAgent)
		case strings.HasPrefix(part, authReferer):
			referer = strings.TrimPrefix(part, authReferer)
		}
	}
	return rawURL, userAgent, referer
}

// EncodeEPGURLs builds the multi-EPG aggregate. It returns "" for an empty list.
func EncodeEPGURLs(urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	return MultiEPGPrefix + strings.Join(urls, MultiEPGSeparator)
}

// DecodeEPGURL expands an EPG URL value into its individual URLs. Plain values
// yield a single-element slice, the empty string yields nil.
func DecodeEPGURL(v string) []string {
	if v == "" {
		return nil
	}
	rest, ok := strings.CutPrefix(v, MultiEPGPrefix)
	if !ok {
		return []string{v}
	}
	var out []string
	for _, u := range strings.Split(rest, MultiEPGSeparator) {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}
