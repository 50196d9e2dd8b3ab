// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordParse(t *testing.T) {
	okBefore := testutil.ToFloat64(playlistParseTotal.WithLabelValues(OutcomeOK))
	emptyBefore := testutil.ToFloat64(playlistParseTotal.WithLabelValues(OutcomeEmpty))

	RecordParse(OutcomeOK, 12, 2)
	assert.Equal(t, okBefore+1, testutil.ToFloat64(playlistParseTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, float64(12), testutil.ToFloat64(playlistChannels))
	assert.Equal(t, float64(2), testutil.ToFloat64(playlistEPGURLs))

	// failures leave the gauges of the last good parse alone
	RecordParse(OutcomeEmpty, 0, 0)
	assert.Equal(t, emptyBefore+1, testutil.ToFloat64(playlistParseTotal.WithLabelValues(OutcomeEmpty)))
	assert.Equal(t, float64(12), testutil.ToFloat64(playlistChannels))
}

func TestIncURLSynthesized(t *testing.T) {
	c := urlSynthesizedTotal.WithLabelValues("xc", "xc")
	before := testutil.ToFloat64(c)
	IncURLSynthesized("xc", "xc")
	IncURLSynthesized("xc", "xc")
	assert.Equal(t, before+2, testutil.ToFloat64(c))
}

func TestIncEPGTimestampError(t *testing.T) {
	before := testutil.ToFloat64(epgTimestampErrors)
	IncEPGTimestampError()
	assert.Equal(t, before+1, testutil.ToFloat64(epgTimestampErrors))
}

func TestPromhttpExposure(t *testing.T) {
	RecordParse(OutcomeOK, 1, 0)

	recorder := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "catchup_playlist_parse_total")
}

func TestWriteTextfile(t *testing.T) {
	RecordParse(OutcomeOK, 3, 1)
	path := filepath.Join(t.TempDir(), "catchup.prom")

	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "catchup_playlist_channels 3"))
}

func TestWriteTextfileEmptyPath(t *testing.T) {
	assert.Error(t, WriteTextfile(""))
}
