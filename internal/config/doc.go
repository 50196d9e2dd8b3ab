// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads catchup settings from defaults, a YAML file and the
// environment, in that order of increasing precedence.
package config
