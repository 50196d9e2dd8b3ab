// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package epg reads XMLTV guides and converts their timestamps for archive playback.
package epg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// maxXMLSize bounds guide decoding; 50MB is enough for multi-week guides.
const maxXMLSize = 50 * 1024 * 1024

// fuzzyDistance is the edit distance accepted when matching channel names.
const fuzzyDistance = 1

type TV struct {
	XMLName   xml.Name    `xml:"tv"`
	Generator string      `xml:"generator-info-name,attr,omitempty"`
	Channels  []Channel   `xml:"channel"`
	Programs  []Programme `xml:"programme"`
}

type Channel struct {
	ID          string   `xml:"id,attr"`
	DisplayName []string `xml:"display-name"`
	Icon        *Icon    `xml:"icon,omitempty"`
}

type Icon struct {
	Src string `xml:"src,attr"`
}

type Programme struct {
	Start     string `xml:"start,attr"`
	Stop      string `xml:"stop,attr"`
	Channel   string `xml:"channel,attr"`
	CatchupID string `xml:"catchup-id,attr,omitempty"`
	Title     Title  `xml:"title"`
	Desc      string `xml:"desc,omitempty"`
}

type Title struct {
	// Lang contains the language code for the title (optional).
	Lang string `xml:"lang,attr,omitempty"`
	// Value is the character data of the title element.
	Value string `xml:",chardata"`
}

// Guide is a decoded XMLTV document indexed for channel lookups.
type Guide struct {
	TV TV

	ids      map[string]struct{}
	nameToID map[string]string
	byID     map[string][]Programme
}

// ReadGuide decodes an XMLTV document. Entity expansion is disabled and input
// beyond maxXMLSize is ignored.
func ReadGuide(r io.Reader) (*Guide, error) {
	var doc TV
	dec := xml.NewDecoder(io.LimitReader(r, maxXMLSize))
	dec.Strict = true
	dec.Entity = make(map[string]string)

	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode xmltv: %w", err)
	}

	g := &Guide{
		TV:       doc,
		ids:      make(map[string]struct{}, len(doc.Channels)),
		nameToID: make(map[string]string, len(doc.Channels)),
		byID:     make(map[string][]Programme),
	}
	for _, ch := range doc.Channels {
		if ch.ID == "" {
			continue
		}
		g.ids[ch.ID] = struct{}{}
		for _, displayName := range ch.DisplayName {
			if key := normalize(displayName); key != "" {
				g.nameToID[key] = ch.ID
			}
		}
	}
	for _, p := range doc.Programs {
		g.byID[p.Channel] = append(g.byID[p.Channel], p)
	}
	return g, nil
}

// ResolveChannel finds the guide channel id for a playlist channel: tvg-id
// first, then the normalized tvg-name or title, then a fuzzy name match.
func (g *Guide) ResolveChannel(tvgID, tvgName, title string) (string, bool) {
	if _, ok := g.ids[tvgID]; ok && tvgID != "" {
		return tvgID, true
	}
	names := []string{tvgName, title}
	for _, name := range names {
		if id, ok := g.nameToID[normalize(name)]; ok && name != "" {
			return id, true
		}
	}
	for _, name := range names {
		if id, ok := FindBest(name, g.nameToID, fuzzyDistance); ok {
			return id, true
		}
	}
	return "", false
}

// Programmes returns the programmes of a channel in document order.
func (g *Guide) Programmes(channelID string) []Programme {
	return g.byID[channelID]
}
