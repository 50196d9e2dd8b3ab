// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package fsutil has the file helpers shared by the CLI commands.
package fsutil

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"

	"github.com/ManuGH/catchup/internal/log"
)

// MaxInputSize caps playlist and guide files read from disk.
const MaxInputSize = 64 << 20

// WriteFileAtomic streams fn's output into a pending file next to path and
// replaces path in one rename after fsync. On error path is left untouched.
func WriteFileAtomic(path string, fn func(w io.Writer) error) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file %s: %w", path, err)
	}
	defer func() {
		// no-op once committed
		if err := pendingFile.Cleanup(); err != nil {
			logger := log.WithComponent("fsutil")
			logger.Debug().
				Err(err).
				Str(log.FieldEvent, "fsutil.cleanup_failed").
				Str(log.FieldPath, path).
				Msg("cleanup pending file")
		}
	}()

	if err := fn(pendingFile); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}

// IsRegularFile checks if path exists and is a regular file (not directory, device, etc).
func IsRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	return nil
}

// ReadInput reads a regular file of at most MaxInputSize bytes.
func ReadInput(path string) ([]byte, error) {
	if err := IsRegularFile(path); err != nil {
		return nil, err
	}
	// #nosec G304 -- input paths are provided by the operator on the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, MaxInputSize)
	}
	return data, nil
}
