// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package m3u parses extended M3U playlists into channel records.
package m3u

import (
	"regexp"
	"strings"
)

// Label keys passed to Options.Label for group localization.
const (
	LabelAllChannels = "allchannels"
	LabelMovies      = "movies"
)

// placeholderEPG is emitted by some providers instead of a real guide URL.
const placeholderEPG = "http://server/jtv.zip"

// LabelFunc localizes a group label key.
type LabelFunc func(key string) string

// DefaultLabel returns English labels for the known keys and the key itself otherwise.
func DefaultLabel(key string) string {
	switch key {
	case LabelAllChannels:
		return "All channels"
	case LabelMovies:
		return "Movies"
	}
	return key
}

// Options controls playlist parsing.
type Options struct {
	// UDPProxy is the base URL of a udpxy-style proxy. When set, udp:// and
	// rtp:// stream URLs are rewritten to go through it.
	UDPProxy string
	// Label localizes group names. Nil means DefaultLabel.
	Label LabelFunc
}

var (
	// Anchored on whitespace so tvg-url="" does not match inside x-tvg-url="".
	headerAttrs = []*regexp.Regexp{
		headerAttrPattern("x-tvg-url"),
		headerAttrPattern("tvg-url"),
		headerAttrPattern("url-tvg"),
	}

	reTvgName       = attrPattern("tvg-name")
	reTvgID         = regexp.MustCompile(`(?i)tvg-id="(.*?)"`)
	reTvgLogo       = attrPattern("tvg-logo")
	reGroupTitle    = attrPattern("group-title")
	reTvgURL        = attrPattern("tvg-url")
	reURLTvg        = attrPattern("url-tvg")
	reCatchup       = attrPattern("catchup")
	reCatchupSource = attrPattern("catchup-source")
	reCatchupDays   = attrPattern("catchup-days")
)

func attrPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(name) + `="(.*?)"`)
}

func headerAttrPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(name) + `="(.*?)"`)
}

func attr(re *regexp.Regexp, line string) string {
	if m := re.FindStringSubmatch(line); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Parse parses extended M3U text.
//
// Lines starting with '#' are buffered until the next non-comment line, which
// is the stream URL closing the block. A block without #EXTINF yields nothing.
//
// Channels are keyed by title: a later block with a title already seen
// replaces the earlier channel in place, keeping the earlier position. Some
// providers rely on this to override entries further down the list.
func Parse(text string, opts Options) (ParseResult, error) {
	if !strings.Contains(text, "#EXTM3U") || !strings.Contains(text, "#EXTINF") {
		return ParseResult{}, ErrMalformedInput
	}
	label := opts.Label
	if label == nil {
		label = DefaultLabel
	}

	var (
		channels []Channel
		byTitle  = make(map[string]int)
		epg      EPGSource
		seenEPG  = make(map[string]struct{})
		buffer   []string
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTM3U"):
			if u := headerEPGURL(line); u != "" {
				epg.Declared = u
			}
		case strings.HasPrefix(line, "#"):
			buffer = append(buffer, line)
		default:
			ch, ok := parseBlock(buffer, line, opts.UDPProxy, label)
			buffer = buffer[:0]
			if !ok {
				continue
			}
			if ch.TvgURL != "" {
				if _, dup := seenEPG[ch.TvgURL]; !dup {
					seenEPG[ch.TvgURL] = struct{}{}
					epg.Channels = append(epg.Channels, ch.TvgURL)
				}
			}
			if idx, exists := byTitle[ch.Title]; exists {
				channels[idx] = ch
				continue
			}
			byTitle[ch.Title] = len(channels)
			channels = append(channels, ch)
		}
	}

	if len(channels) == 0 {
		return ParseResult{}, ErrEmptyResult
	}
	return ParseResult{Channels: channels, EPG: epg}, nil
}

func headerEPGURL(line string) string {
	for _, re := range headerAttrs {
		if u := attr(re, line); u != "" {
			if u == placeholderEPG {
				return ""
			}
			return u
		}
	}
	return ""
}

func parseBlock(buffer []string, streamURL, udpProxy string, label LabelFunc) (Channel, bool) {
	var (
		extinf    string
		group     string
		logo      string
		userAgent string
		referer   string
	)
	for _, line := range buffer {
		switch {
		case strings.HasPrefix(line, "#EXTINF:"):
			extinf = line
		case strings.HasPrefix(line, "#EXTGRP:"):
			group = strings.TrimSpace(strings.TrimPrefix(line, "#EXTGRP:"))
		case strings.HasPrefix(line, "#EXTLOGO:"):
			logo = strings.TrimSpace(strings.TrimPrefix(line, "#EXTLOGO:"))
		case strings.HasPrefix(line, "#EXTVLCOPT:http-user-agent="):
			userAgent = strings.TrimSpace(strings.TrimPrefix(line, "#EXTVLCOPT:http-user-agent="))
		case strings.HasPrefix(line, "#EXTVLCOPT:http-referrer="):
			referer = strings.TrimSpace(strings.TrimPrefix(line, "#EXTVLCOPT:http-referrer="))
		}
	}
	if extinf == "" {
		return Channel{}, false
	}

	ch := parseExtinf(extinf)
	if group != "" {
		ch.Group = group
	}
	if logo != "" {
		ch.TvgLogo = logo
	}
	ch.UserAgent = userAgent
	ch.Referer = referer
	ch.Group = normalizeGroup(ch.Group, label)
	ch.URL = proxyURL(streamURL, udpProxy)
	return ch, true
}

// parseExtinf extracts the descriptor attributes and the title.
// #EXTINF:-1 tvg-id="..." tvg-name="..." catchup="..." group-title="...",Display, Name
func parseExtinf(line string) Channel {
	ch := Channel{
		Raw:           line,
		TvgName:       attr(reTvgName, line),
		TvgID:         attr(reTvgID, line),
		TvgLogo:       attr(reTvgLogo, line),
		Group:         attr(reGroupTitle, line),
		TvgURL:        attr(reTvgURL, line),
		Catchup:       attr(reCatchup, line),
		CatchupSource: attr(reCatchupSource, line),
		CatchupDays:   attr(reCatchupDays, line),
	}
	if ch.TvgURL == "" {
		ch.TvgURL = attr(reURLTvg, line)
	}
	if ch.Catchup == "" {
		ch.Catchup = DefaultCatchup
	}
	if ch.CatchupDays == "" {
		ch.CatchupDays = DefaultCatchupDays
	}

	// Name is after the last comma; titles may contain commas themselves
	if idx := strings.LastIndex(line, ","); idx != -1 {
		ch.Title = strings.TrimSpace(line[idx+1:])
	} else {
		ch.Title = ch.TvgName
	}
	return ch
}

func normalizeGroup(group string, label LabelFunc) string {
	switch {
	case group == "":
		return label(LabelAllChannels)
	case strings.EqualFold(group, "vod"):
		return "> " + label(LabelMovies)
	case len(group) >= 4 && strings.EqualFold(group[:4], "vod "):
		return "> " + label(LabelMovies) + " > " + group[4:]
	}
	return group
}

func proxyURL(streamURL, udpProxy string) string {
	if udpProxy == "" {
		return streamURL
	}
	for _, scheme := range []string{"udp", "rtp"} {
		if rest, ok := strings.CutPrefix(streamURL, scheme+"://"); ok {
			u := udpProxy + "/" + scheme + "/" + rest
			u = strings.ReplaceAll(u, "//udp/", "/udp/")
			return strings.ReplaceAll(u, "//rtp/", "/rtp/")
		}
	}
	return streamURL
}
