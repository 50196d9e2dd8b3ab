// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package playlist

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ManuGH/catchup/internal/m3u"
)

// FuzzWriteM3U checks that written playlists always parse back to the same channel count.
func FuzzWriteM3U(f *testing.F) {
	f.Add("Channel 1", "ch1", "http://logo.png", "Group1", "shift", "http://stream1")
	f.Add("Test & <Special>", "test-id", "", "Default", "", "http://example.com/stream")
	f.Add("Unicode Тест", "unicode-1", "http://example.com/logo.png", "Интер", "xc", "rtsp://stream")

	f.Fuzz(func(t *testing.T, title, tvgID, logo, group, mode, url string) {
		// Titles come from after the last comma and URLs are single non-comment lines
		title = strings.TrimSpace(strings.NewReplacer(",", "", "\n", "", "\r", "").Replace(title))
		url = strings.TrimSpace(strings.NewReplacer("\n", "", "\r", "").Replace(url))
		if title == "" || url == "" || strings.HasPrefix(url, "#") {
			t.Skip()
		}
		res := m3u.ParseResult{Channels: []m3u.Channel{{
			Title: title, TvgID: tvgID, TvgLogo: logo, Group: group,
			Catchup: mode, CatchupDays: "1", URL: url,
		}}}

		var buf bytes.Buffer
		if err := WriteM3U(&buf, res); err != nil {
			t.Fatalf("WriteM3U failed: %v", err)
		}
		out, err := m3u.Parse(buf.String(), m3u.Options{})
		if err != nil {
			t.Fatalf("written playlist does not parse: %v\n%s", err, buf.String())
		}
		if len(out.Channels) != 1 {
			t.Fatalf("expected 1 channel, got %d", len(out.Channels))
		}
	})
}
