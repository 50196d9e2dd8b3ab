// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGuide = `<?xml version="1.0" encoding="UTF-8"?>
<tv generator-info-name="test">
  <channel id="orf1.at">
    <display-name>ORF1 HD</display-name>
    <display-name>ORF 1</display-name>
  </channel>
  <channel id="servus.at">
    <display-name>ServusTV Österreich</display-name>
  </channel>
  <programme start="20240101200000 +0000" stop="20240101211500 +0000" channel="orf1.at" catchup-id="evt-1">
    <title lang="de">ZIB</title>
    <desc>News</desc>
  </programme>
  <programme start="20240101211500 +0000" stop="20240101230000 +0000" channel="orf1.at">
    <title>Film</title>
  </programme>
  <programme start="20240101200000 +0000" stop="20240101210000 +0000" channel="servus.at">
    <title>Sport</title>
  </programme>
</tv>`

func TestReadGuide(t *testing.T) {
	g, err := ReadGuide(strings.NewReader(sampleGuide))
	require.NoError(t, err)
	assert.Len(t, g.TV.Channels, 2)

	progs := g.Programmes("orf1.at")
	require.Len(t, progs, 2)
	assert.Equal(t, "ZIB", progs[0].Title.Value)
	assert.Equal(t, "de", progs[0].Title.Lang)
	assert.Equal(t, "evt-1", progs[0].CatchupID)
	assert.Equal(t, "News", progs[0].Desc)
	assert.Empty(t, g.Programmes("missing"))
}

func TestReadGuideSecurity(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{
			name: "external entity",
			xml: `<?xml version="1.0"?>
<!DOCTYPE foo [<!ENTITY xxe SYSTEM "file:///etc/passwd">]>
<tv><channel id="x"><display-name>&xxe;</display-name></channel></tv>`,
		},
		{
			name: "malformed",
			xml:  `<tv><channel id="x"><display-name>Unclosed</channel></tv>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGuide(strings.NewReader(tt.xml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "decode xmltv")
		})
	}
}

func TestResolveChannel(t *testing.T) {
	g, err := ReadGuide(strings.NewReader(sampleGuide))
	require.NoError(t, err)

	tests := []struct {
		name    string
		tvgID   string
		tvgName string
		title   string
		want    string
		found   bool
	}{
		{name: "tvg-id", tvgID: "orf1.at", title: "whatever", want: "orf1.at", found: true},
		{name: "unknown tvg-id falls back to title", tvgID: "nope", title: "ORF1", want: "orf1.at", found: true},
		{name: "tvg-name", tvgName: "orf 1", title: "x", want: "orf1.at", found: true},
		{name: "suffix and unicode", title: "ServusTV", want: "servus.at", found: true},
		{name: "fuzzy", title: "ServusTV2", want: "servus.at", found: true},
		{name: "no match", title: "Completely Different", found: false},
		{name: "empty", found: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := g.ResolveChannel(tt.tvgID, tt.tvgName, tt.title)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestWindow(t *testing.T) {
	p := Programme{Start: "20240101200000 +0000", Stop: "20240101211500 +0000"}

	start, stop, err := Window(p, TimestampOptions{Location: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, "01.01.2024 20:00:00", start)
	assert.Equal(t, "01.01.2024 21:15:00", stop)

	cet := time.FixedZone("CET", 3600)
	start, _, err = Window(p, TimestampOptions{Location: cet, OffsetHours: 1})
	require.NoError(t, err)
	assert.Equal(t, "01.01.2024 22:00:00", start)

	_, _, err = Window(Programme{Start: "bad", Stop: p.Stop}, TimestampOptions{})
	require.ErrorIs(t, err, ErrInvalidTimestamp)
	_, _, err = Window(Programme{Start: p.Start, Stop: "bad"}, TimestampOptions{})
	require.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestCatchupTime(t *testing.T) {
	got, err := CatchupTime("20240305070809 +0000", TimestampOptions{Location: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, "05.03.2024 07:08:09", got)
}
