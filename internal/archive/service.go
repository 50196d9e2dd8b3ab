// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package archive turns parsed playlists and guides into replayable archive links.
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/catchup/internal/catchup"
	"github.com/ManuGH/catchup/internal/config"
	"github.com/ManuGH/catchup/internal/epg"
	"github.com/ManuGH/catchup/internal/log"
	"github.com/ManuGH/catchup/internal/m3u"
	"github.com/ManuGH/catchup/internal/metrics"
)

// ErrNoGuideChannel is returned when a playlist channel has no guide counterpart.
var ErrNoGuideChannel = errors.New("archive: channel not found in guide")

// Link is a synthesized archive URL.
type Link struct {
	URL      string           `json:"url"`
	WireURL  string           `json:"wire_url"`
	Mode     catchup.Mode     `json:"mode"`
	Strategy catchup.Strategy `json:"strategy"`
}

// Entry is a replayable programme.
type Entry struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	Stop  time.Time `json:"stop"`
	Link  Link      `json:"link"`
}

// Service applies one configuration to playlist and archive operations.
type Service struct {
	parseOpts m3u.Options
	expander  catchup.Expander
	epgOpts   epg.TimestampOptions
}

// Option customizes a Service.
type Option func(*Service)

// WithClock sets the clock and zone used for placeholder expansion and for
// guide timestamps without a zone suffix.
func WithClock(now func() time.Time, loc *time.Location) Option {
	return func(s *Service) {
		s.expander = catchup.Expander{Now: now, Location: loc}
		s.epgOpts.Location = loc
	}
}

// New creates a Service from a resolved configuration.
func New(cfg config.AppConfig, opts ...Option) *Service {
	s := &Service{
		parseOpts: cfg.ParseOptions(),
		epgOpts:   epg.TimestampOptions{OffsetHours: cfg.EPGOffset},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// LoadPlaylist parses text and records the outcome.
func (s *Service) LoadPlaylist(ctx context.Context, text string) (m3u.ParseResult, error) {
	logger := log.WithComponentFromContext(ctx, "archive")

	res, err := m3u.Parse(text, s.parseOpts)
	if err != nil {
		outcome := metrics.OutcomeMalformed
		if errors.Is(err, m3u.ErrEmptyResult) {
			outcome = metrics.OutcomeEmpty
		}
		metrics.RecordParse(outcome, 0, 0)
		logger.Warn().
			Err(err).
			Str(log.FieldEvent, "playlist.rejected").
			Str(log.FieldOutcome, outcome).
			Msg("playlist rejected")
		return m3u.ParseResult{}, fmt.Errorf("parse playlist: %w", err)
	}

	epgURLs := len(res.EPG.URLs())
	metrics.RecordParse(metrics.OutcomeOK, len(res.Channels), epgURLs)
	logger.Info().
		Str(log.FieldEvent, "playlist.parsed").
		Int(log.FieldChannels, len(res.Channels)).
		Int(log.FieldEPGURLs, epgURLs).
		Msg("playlist parsed")
	return res, nil
}

// ArchiveURL builds the archive URL of ch for the programme between start and
// stop (catchup.TimeLayout). The wire form carries the channel's auth options.
func (s *Service) ArchiveURL(ctx context.Context, ch m3u.Channel, start, stop, catchupID string) (Link, error) {
	res, err := s.expander.Synthesize(catchup.Request{
		URL:    ch.URL,
		Config: catchup.FromChannel(ch),
		Start:  start,
		Stop:   stop,
		ID:     catchupID,
	})
	if err != nil {
		return Link{}, fmt.Errorf("archive url for %q: %w", ch.Title, err)
	}

	metrics.IncURLSynthesized(string(res.Mode), string(res.Strategy))
	logger := log.WithComponentFromContext(ctx, "archive")
	logger.Debug().
		Str(log.FieldEvent, "archive.url_synthesized").
		Str(log.FieldChannel, ch.Title).
		Str(log.FieldMode, string(res.Mode)).
		Str(log.FieldStrategy, string(res.Strategy)).
		Str(log.FieldStart, start).
		Str(log.FieldStop, stop).
		Str(log.FieldURL, res.URL).
		Msg("archive url synthesized")

	return Link{
		URL:      res.URL,
		WireURL:  m3u.EncodeWireURL(res.URL, ch.UserAgent, ch.Referer),
		Mode:     res.Mode,
		Strategy: res.Strategy,
	}, nil
}

// Programmes lists the guide programmes of ch that can be replayed at now,
// in guide order. Programmes with unparseable times are skipped.
func (s *Service) Programmes(ctx context.Context, ch m3u.Channel, guide *epg.Guide, now time.Time) ([]Entry, error) {
	logger := log.WithComponentFromContext(ctx, "archive")

	id, ok := guide.ResolveChannel(ch.TvgID, ch.TvgName, ch.Title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoGuideChannel, ch.Title)
	}
	cfg := catchup.Normalize(catchup.FromChannel(ch))

	var entries []Entry
	for _, p := range guide.Programmes(id) {
		st, et, err := epg.Times(p, s.epgOpts)
		if err != nil {
			metrics.IncEPGTimestampError()
			logger.Debug().
				Err(err).
				Str(log.FieldEvent, "archive.programme_skipped").
				Str(log.FieldChannel, ch.Title).
				Msg("programme has invalid times")
			continue
		}
		if !cfg.Available(st, now) {
			continue
		}
		link, err := s.ArchiveURL(ctx, ch, catchup.FormatTime(st), catchup.FormatTime(et), p.CatchupID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Title: p.Title.Value, Start: st, Stop: et, Link: link})
	}

	logger.Info().
		Str(log.FieldEvent, "archive.programmes_listed").
		Str(log.FieldChannel, ch.Title).
		Int("programmes", len(entries)).
		Msg("archive programmes listed")
	return entries, nil
}
