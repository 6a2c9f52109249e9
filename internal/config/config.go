// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging values from flags, environment variables, and an
// optional config file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Iron holds the seal engine settings.
	Iron Iron `envPrefix:"IRON_"`

	// Password tells where the password material comes from.
	Password Password `envPrefix:"PASSWORD_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// ConfigFilePath is the optional path to a config file. Files ending in
	// .yaml or .yml are YAML, any other file is JSON with comments.
	// Env: CONFIG
	ConfigFilePath string `env:"CONFIG"`
}

// Iron holds the options of the seal engine.
type Iron struct {
	// Encryption configures the encryption key.
	Encryption Slot `envPrefix:"ENCRYPTION_"`

	// Integrity configures the MAC key.
	Integrity Slot `envPrefix:"INTEGRITY_"`

	// TTL is the lifetime of sealed tokens. Zero means they never expire.
	// Env: IRON_TTL
	TTL time.Duration `env:"TTL"`

	// TimestampSkew is the grace period past expiration accepted on unseal.
	// Env: IRON_TIMESTAMP_SKEW
	TimestampSkew time.Duration `env:"TIMESTAMP_SKEW"`

	// LocaltimeOffset is added to the local clock (e.g. "-2s").
	// Env: IRON_LOCALTIME_OFFSET
	LocaltimeOffset time.Duration `env:"LOCALTIME_OFFSET"`
}

// Slot configures the derivation of one key.
// Env: IRON_ENCRYPTION_* and IRON_INTEGRITY_*
type Slot struct {
	Algorithm         string `env:"ALGORITHM"`
	SaltBits          int    `env:"SALT_BITS"`
	Iterations        int    `env:"ITERATIONS"`
	MinPasswordLength int    `env:"MIN_PASSWORD_LENGTH"`
	KDF               string `env:"KDF"`
}

// Password selects the password source. At most one of File and Keyring
// may be set; with neither, the secret is read from the environment
// variable named by Env, then from the terminal.
type Password struct {
	// ID is the password id embedded into sealed tokens.
	// Env: PASSWORD_ID
	ID string `env:"ID"`

	// Env names the environment variable that holds the secret.
	// Env: PASSWORD_ENV
	Env string `env:"ENV"`

	// File is a file whose content is the secret.
	// Env: PASSWORD_FILE
	File string `env:"FILE"`

	// Keyring is a file mapping password ids to secrets.
	// Env: PASSWORD_KEYRING
	Keyring string `env:"KEYRING"`
}

// Log holds logger settings.
type Log struct {
	// Level is the minimum level name ("debug", "info", "warn", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads, merges, and validates the configuration.
// Configuration flags are registered on fs, which is then parsed with args;
// callers may register their own flags on fs beforehand and read the
// positional arguments from fs.Args afterwards.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(fs *pflag.FlagSet, args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(fs, args).
		withEnv().
		withFile().
		build()
}
