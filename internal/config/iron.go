// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "github.com/MKhiriev/go-iron/internal/iron"

// defaultConfig returns the values used for fields no source sets.
func defaultConfig() *StructuredConfig {
	opts := iron.DefaultOptions()
	return &StructuredConfig{
		Iron: Iron{
			Encryption: slotFromOptions(opts.Encryption),
			Integrity:  slotFromOptions(opts.Integrity),
		},
		Log: Log{
			Level: "info",
		},
	}
}

// IronOptions returns the seal engine options described by cfg.
func (cfg *StructuredConfig) IronOptions() iron.Options {
	opts := iron.DefaultOptions()
	cfg.Iron.Encryption.apply(&opts.Encryption)
	cfg.Iron.Integrity.apply(&opts.Integrity)
	opts.TTL = cfg.Iron.TTL
	opts.TimestampSkew = cfg.Iron.TimestampSkew
	opts.LocaltimeOffset = cfg.Iron.LocaltimeOffset
	return opts
}

func (s Slot) apply(opts *iron.KeyOptions) {
	if s.Algorithm != "" {
		opts.Algorithm = s.Algorithm
	}
	if s.SaltBits != 0 {
		opts.SaltBits = s.SaltBits
	}
	if s.Iterations != 0 {
		opts.Iterations = s.Iterations
	}
	if s.MinPasswordLength != 0 {
		opts.MinPasswordLength = s.MinPasswordLength
	}
	if s.KDF != "" {
		opts.KDF = s.KDF
	}
}

func slotFromOptions(opts iron.KeyOptions) Slot {
	return Slot{
		Algorithm:         opts.Algorithm,
		SaltBits:          opts.SaltBits,
		Iterations:        opts.Iterations,
		MinPasswordLength: opts.MinPasswordLength,
		KDF:               opts.KDF,
	}
}
