// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics holds the Prometheus collectors of the catchup tooling.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Parse outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeMalformed = "malformed"
	OutcomeEmpty     = "empty"
)

var (
	playlistParseTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catchup_playlist_parse_total",
		Help: "Playlist parse attempts by outcome",
	}, []string{"outcome"}) // outcome=ok|malformed|empty

	playlistChannels = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catchup_playlist_channels",
		Help: "Number of channels in the last parsed playlist",
	})

	playlistEPGURLs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catchup_playlist_epg_urls",
		Help: "Number of EPG URLs in the last parsed playlist",
	})

	urlSynthesizedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catchup_url_synthesized_total",
		Help: "Archive URLs synthesized by catchup mode and strategy",
	}, []string{"mode", "strategy"})

	epgTimestampErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catchup_epg_timestamp_errors_total",
		Help: "Total number of XMLTV timestamps that failed to parse",
	})
)

// RecordParse records one parse attempt. Gauges are only updated on success.
func RecordParse(outcome string, channels, epgURLs int) {
	playlistParseTotal.WithLabelValues(outcome).Inc()
	if outcome != OutcomeOK {
		return
	}
	playlistChannels.Set(float64(channels))
	playlistEPGURLs.Set(float64(epgURLs))
}

func IncURLSynthesized(mode, strategy string) {
	urlSynthesizedTotal.WithLabelValues(mode, strategy).Inc()
}

func IncEPGTimestampError() { epgTimestampErrors.Inc() }
