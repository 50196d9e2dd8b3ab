// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.m3u")
	other := filepath.Join(dir, "other.m3u")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o600))

	var calls atomic.Int32
	changed := make(chan struct{}, 4)
	w, err := New(path, 250*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		changed <- struct{}{}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("change callback not called")
	}
	time.Sleep(600 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcherCallbackErrorKeepsRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.m3u")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o600))

	changed := make(chan struct{}, 4)
	w, err := New(path, 20*time.Millisecond, func(context.Context) error {
		changed <- struct{}{}
		return errors.New("parse failed")
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := 0; i < 2; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o600))
		select {
		case <-changed:
		case <-time.After(5 * time.Second):
			t.Fatalf("change %d not seen", i)
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "list.m3u"), 0, func(context.Context) error { return nil })
	assert.Error(t, err)
}
