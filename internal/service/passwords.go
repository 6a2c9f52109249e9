// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-iron/internal/config"
	"github.com/MKhiriev/go-iron/internal/iron"
	"github.com/MKhiriev/go-iron/internal/secret"
)

// PromptFunc reads a secret interactively.
type PromptFunc func() (string, error)

// Passwords is the password material a SealService is built from.
type Passwords struct {
	// Seal is the password new tokens are sealed with. It is zero when a
	// keyring has no entry for the configured password id.
	Seal iron.Password
	// Source resolves password ids found in tokens.
	Source iron.PasswordSource
}

// LoadPasswords resolves the password material described by cfg:
//   - cfg.Keyring: every keyring entry unseals; the entry named by cfg.ID seals.
//   - cfg.File: the file content is the single password.
//   - otherwise: the environment variable cfg.Env (secret.DefaultEnvVar when
//     empty), falling back to prompt when it is unset and prompt is non-nil.
func LoadPasswords(cfg config.Password, prompt PromptFunc) (Passwords, error) {
	if cfg.Keyring != "" {
		keyring, err := secret.LoadKeyring(cfg.Keyring)
		if err != nil {
			return Passwords{}, fmt.Errorf("error loading keyring: %w", err)
		}
		sealPassword, _ := keyring.Lookup(cfg.ID)
		return Passwords{Seal: sealPassword, Source: keyring}, nil
	}

	var value string
	var err error
	if cfg.File != "" {
		value, err = secret.FromFile(cfg.File)
	} else {
		value, err = secret.FromEnv(cfg.Env)
		if errors.Is(err, secret.ErrNotSet) && prompt != nil {
			value, err = prompt()
		}
	}
	if err != nil {
		return Passwords{}, fmt.Errorf("error reading password: %w", err)
	}

	password := iron.Password{ID: cfg.ID, Secret: value}
	return Passwords{Seal: password, Source: password}, nil
}
