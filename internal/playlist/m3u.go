// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package playlist writes parsed channels back out as extended M3U.
package playlist

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ManuGH/catchup/internal/m3u"
)

var attrEscaper = strings.NewReplacer(`"`, "'", "\r", " ", "\n", " ")

// WriteM3U writes res so that m3u.Parse reads back the same channels.
// Double quotes inside attribute values are replaced by single quotes.
func WriteM3U(w io.Writer, res m3u.ParseResult) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("#EXTM3U")
	if res.EPG.Declared != "" {
		writeAttr(bw, "x-tvg-url", res.EPG.Declared)
	}
	bw.WriteString("\n")

	for _, ch := range res.Channels {
		bw.WriteString("#EXTINF:-1")
		writeAttr(bw, "tvg-name", ch.TvgName)
		writeAttr(bw, "tvg-id", ch.TvgID)
		writeAttr(bw, "tvg-logo", ch.TvgLogo)
		writeAttr(bw, "group-title", ch.Group)
		writeAttr(bw, "tvg-url", ch.TvgURL)
		fmt.Fprintf(bw, ` catchup="%s"`, attrEscaper.Replace(ch.Catchup))
		writeAttr(bw, "catchup-source", ch.CatchupSource)
		fmt.Fprintf(bw, ` catchup-days="%s"`, attrEscaper.Replace(ch.CatchupDays))
		bw.WriteString("," + attrEscaper.Replace(ch.Title) + "\n")

		if ch.UserAgent != "" {
			bw.WriteString("#EXTVLCOPT:http-user-agent=" + ch.UserAgent + "\n")
		}
		if ch.Referer != "" {
			bw.WriteString("#EXTVLCOPT:http-referrer=" + ch.Referer + "\n")
		}
		bw.WriteString(ch.URL + "\n")
	}
	return bw.Flush()
}

func writeAttr(w *bufio.Writer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, ` %s="%s"`, name, attrEscaper.Replace(value))
}
