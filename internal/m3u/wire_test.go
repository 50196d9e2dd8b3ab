// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package m3u

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWireURLRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		url  string
		ua   string
		ref  string
	}{
		{name: "both", url: "http://h/a?x=1", ua: "VLC/3.0 LibVLC", ref: "http://ref/"},
		{name: "ua only", url: "http://h/a", ua: "Kodi"},
		{name: "referer only", url: "http://h/a", ref: "https://r.example/page"},
		{name: "neither", url: "http://h/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := EncodeWireURL(tt.url, tt.ua, tt.ref)
			u, ua, ref := DecodeWireURL(wire)
			assert.Equal(t, tt.url, u)
			assert.Equal(t, tt.ua, ua)
			assert.Equal(t, tt.ref, ref)
		})
	}
}

func TestWireURLConsumerSplit(t *testing.T) {
	wire := EncodeWireURL("http://h/a", "UA", "REF")
	parts := strings.Split(wire, "^^^^^^^^^^")
	assert.Equal(t, []string{"http://h/a", "useragent=UA@#@", "referer=REF@#@"}, parts)
	assert.Equal(t, "UA", strings.TrimSuffix(strings.TrimPrefix(parts[1], "useragent="), "@#@"))
	assert.Equal(t, "REF", strings.TrimSuffix(strings.TrimPrefix(parts[2], "referer="), "@#@"))
}

func TestDecodeEPGURL(t *testing.T) {
	assert.Nil(t, DecodeEPGURL(""))
	assert.Equal(t, []string{"http://a"}, DecodeEPGURL("http://a"))
	assert.Equal(t, []string{"http://a", "http://b"}, DecodeEPGURL(EncodeEPGURLs([]string{"http://a", "http://b"})))
	assert.Empty(t, EncodeEPGURLs(nil))
}

func TestEPGSourceURLs(t *testing.T) {
	assert.Equal(t, []string{"http://d"}, EPGSource{Declared: "http://d", Channels: []string{"http://c"}}.URLs())
	assert.Equal(t, []string{"http://c"}, EPGSource{Channels: []string{"http://c"}}.URLs())
	assert.Empty(t, EPGSource{}.URLs())
}
