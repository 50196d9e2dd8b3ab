// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package catchup

import (
	"regexp"
	"strings"
)

// Strategy names the rule that produced an archive URL.
type Strategy string

const (
	StrategyTemplate     Strategy = "template"
	StrategyAppend       Strategy = "append"
	StrategyShift        Strategy = "shift"
	StrategyFlussonicAbs Strategy = "flussonic-abs"
	StrategyFlussonicRel Strategy = "flussonic-rel"
	StrategyXC           Strategy = "xc"
	StrategyIdentity     Strategy = "identity"
)

// Request describes one archive URL to build.
type Request struct {
	URL    string // plain stream URL, without auth sentinels
	Config Config
	Start  string // TimeLayout
	Stop   string // TimeLayout
	ID     string // optional catchup-id
}

// Result is a synthesized archive URL together with how it was derived.
type Result struct {
	URL      string
	Mode     Mode
	Strategy Strategy
}

var (
	// host / path / list type / stream type / query
	flussonicRe = regexp.MustCompile(`^(https?://[^/]+)/(.*)/([^/]*)(mpegts|\.m3u8)(\?.+=.+)?$`)
	// host / path / rest / query
	flussonicLooseRe = regexp.MustCompile(`^(https?://[^/]+)/(.*)/([^\?]*)(\?.+=.+)?$`)
	// host / username / password / channel id / extension
	xtreamRe = regexp.MustCompile(`^(https?://[^/]+)/(?:live/)?([^/]+)/([^/]+)/([^/\.]+)(\.m3u8?)?$`)
)

// plan is what a matcher produces: prefix is copied verbatim, template is expanded.
type plan struct {
	prefix   string
	template string
	strategy Strategy
}

// matcher tries to derive a plan for streamURL; ok is false when the URL
// does not have the shape the matcher understands.
type matcher func(streamURL string, mode Mode) (p plan, ok bool)

var (
	flussonicChain = []matcher{matchFlussonic, matchFlussonicLoose}
	xtreamChain    = []matcher{matchXtream}
)

// Synthesize builds an archive URL with the default Expander.
func Synthesize(streamURL string, cfg Config, start, end, catchupID string) (string, error) {
	res, err := Expander{}.Synthesize(Request{URL: streamURL, Config: cfg, Start: start, Stop: end, ID: catchupID})
	if err != nil {
		return "", err
	}
	return res.URL, nil
}

// Synthesize normalizes the request config, picks the URL convention of its
// mode and expands the resulting template. Provider URL shapes that cannot be
// decomposed leave the stream URL unchanged, placeholders included.
func (e Expander) Synthesize(req Request) (Result, error) {
	cfg := Normalize(req.Config)
	p := planFor(req.URL, cfg)
	res := Result{Mode: cfg.Mode, Strategy: p.strategy}
	if p.strategy == StrategyIdentity {
		res.URL = req.URL
		return res, nil
	}
	expanded, err := e.Expand(req.Start, req.Stop, req.ID, p.template)
	if err != nil {
		return Result{}, err
	}
	res.URL = p.prefix + expanded
	return res, nil
}

func planFor(streamURL string, cfg Config) plan {
	switch cfg.Mode {
	case ModeDefault:
		return plan{template: cfg.Source, strategy: StrategyTemplate}
	case ModeAppend:
		return plan{prefix: streamURL, template: cfg.Source, strategy: StrategyAppend}
	case ModeShift:
		sep := "?"
		if strings.Contains(streamURL, "?") {
			sep = "&"
		}
		return plan{prefix: streamURL, template: sep + "utc={utc}&lutc={lutc}", strategy: StrategyShift}
	case ModeFlussonic, ModeFlussonicHLS, ModeFlussonicTS, ModeFS:
		return firstMatch(flussonicChain, streamURL, cfg.Mode)
	case ModeXC:
		return firstMatch(xtreamChain, streamURL, cfg.Mode)
	}
	return plan{strategy: StrategyIdentity}
}

func firstMatch(chain []matcher, streamURL string, mode Mode) plan {
	for _, m := range chain {
		if p, ok := m(streamURL, mode); ok {
			return p
		}
	}
	return plan{strategy: StrategyIdentity}
}

func matchFlussonic(streamURL string, _ Mode) (plan, bool) {
	m := flussonicRe.FindStringSubmatch(streamURL)
	if m == nil {
		return plan{}, false
	}
	host, path, listType, streamType, query := m[1], m[2], m[3], m[4], m[5]
	if streamType == "mpegts" {
		return flussonicAbs(host, path, query), true
	}
	prefix := ""
	if listType != "index" {
		prefix = listType + "-"
	}
	return plan{
		template: host + "/" + path + "/" + prefix + "timeshift_rel-{offset:1}.m3u8" + query,
		strategy: StrategyFlussonicRel,
	}, true
}

func matchFlussonicLoose(streamURL string, mode Mode) (plan, bool) {
	m := flussonicLooseRe.FindStringSubmatch(streamURL)
	if m == nil {
		return plan{}, false
	}
	host, path, query := m[1], m[2], m[4]
	switch mode {
	case ModeFlussonicTS, ModeFS:
		return flussonicAbs(host, path, query), true
	case ModeFlussonic, ModeFlussonicHLS:
		return plan{
			template: host + "/" + path + "/timeshift_rel-{offset:1}.m3u8" + query,
			strategy: StrategyFlussonicRel,
		}, true
	}
	return plan{}, false
}

func flussonicAbs(host, path, query string) plan {
	return plan{
		template: host + "/" + path + "/timeshift_abs-${start}.ts" + query,
		strategy: StrategyFlussonicAbs,
	}
}

func matchXtream(streamURL string, _ Mode) (plan, bool) {
	m := xtreamRe.FindStringSubmatch(streamURL)
	if m == nil {
		return plan{}, false
	}
	host, user, pass, chanID, ext := m[1], m[2], m[3], m[4], m[5]
	if ext == "" {
		ext = ".ts"
	}
	return plan{
		template: host + "/timeshift/" + user + "/" + pass + "/{duration:60}/{Y}-{m}-{d}:{H}-{M}/" + chanID + ext,
		strategy: StrategyXC,
	}, true
}
