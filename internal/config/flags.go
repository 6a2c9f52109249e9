// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// parseFlags registers the configuration flags on fs and parses args.
//
// Flags:
//
//	-c/--config config file path
//	--encryption-algorithm, --integrity-algorithm
//	--encryption-iterations, --integrity-iterations
//	--encryption-salt-bits, --integrity-salt-bits
//	--encryption-kdf, --integrity-kdf
//	--min-password-length minimum secret length for both keys
//	--ttl token lifetime (e.g. "1h", "30m")
//	--timestamp-skew expiration grace period
//	--localtime-offset local clock adjustment
//	--password-id id embedded into sealed tokens
//	--password-env environment variable holding the secret
//	--password-file file holding the secret
//	--keyring file mapping password ids to secrets
//	--log-level minimum log level
func parseFlags(fs *pflag.FlagSet, args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var minPasswordLength int

	fs.StringVarP(&cfg.ConfigFilePath, "config", "c", "", "Config file path (.json, .jsonc, .yaml)")

	fs.StringVar(&cfg.Iron.Encryption.Algorithm, "encryption-algorithm", "", "Encryption algorithm (aes-256-cbc, aes-128-ctr)")
	fs.StringVar(&cfg.Iron.Integrity.Algorithm, "integrity-algorithm", "", "Integrity algorithm (sha256)")
	fs.IntVar(&cfg.Iron.Encryption.Iterations, "encryption-iterations", 0, "Encryption key derivation iterations")
	fs.IntVar(&cfg.Iron.Integrity.Iterations, "integrity-iterations", 0, "Integrity key derivation iterations")
	fs.IntVar(&cfg.Iron.Encryption.SaltBits, "encryption-salt-bits", 0, "Encryption salt size in bits")
	fs.IntVar(&cfg.Iron.Integrity.SaltBits, "integrity-salt-bits", 0, "Integrity salt size in bits")
	fs.StringVar(&cfg.Iron.Encryption.KDF, "encryption-kdf", "", "Encryption key derivation function (pbkdf2-sha1, argon2id)")
	fs.StringVar(&cfg.Iron.Integrity.KDF, "integrity-kdf", "", "Integrity key derivation function (pbkdf2-sha1, argon2id)")
	fs.IntVar(&minPasswordLength, "min-password-length", 0, "Minimum password length in characters")

	fs.DurationVar(&cfg.Iron.TTL, "ttl", 0, "Token lifetime (e.g. 1h, 30m); 0 never expires")
	fs.DurationVar(&cfg.Iron.TimestampSkew, "timestamp-skew", 0, "Grace period past expiration")
	fs.DurationVar(&cfg.Iron.LocaltimeOffset, "localtime-offset", 0, "Local clock adjustment")

	fs.StringVar(&cfg.Password.ID, "password-id", "", "Password id embedded into sealed tokens")
	fs.StringVar(&cfg.Password.Env, "password-env", "", "Environment variable holding the password")
	fs.StringVar(&cfg.Password.File, "password-file", "", "File holding the password")
	fs.StringVar(&cfg.Password.Keyring, "keyring", "", "Keyring file mapping password ids to passwords")

	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if fs.Changed("min-password-length") {
		cfg.Iron.Encryption.MinPasswordLength = minPasswordLength
		cfg.Iron.Integrity.MinPasswordLength = minPasswordLength
	}

	return cfg, nil
}
