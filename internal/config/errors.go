// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidIronConfigs indicates seal engine options that
	// iron.Options.Validate rejects (for example, an unknown algorithm).
	ErrInvalidIronConfigs = errors.New("invalid iron configuration")
	// ErrInvalidPasswordConfigs indicates conflicting password sources
	// or a malformed password id.
	ErrInvalidPasswordConfigs = errors.New("invalid password configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
)
