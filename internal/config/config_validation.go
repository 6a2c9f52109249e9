// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-iron/internal/iron"
)

// validate checks that the final merged [StructuredConfig] can be used.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.IronOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIronConfigs, err)
	}

	if cfg.Password.File != "" && cfg.Password.Keyring != "" {
		return fmt.Errorf("%w: password file and keyring are mutually exclusive", ErrInvalidPasswordConfigs)
	}
	if err := iron.ValidatePasswordID(cfg.Password.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPasswordConfigs, err)
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err)
	}

	return nil
}
