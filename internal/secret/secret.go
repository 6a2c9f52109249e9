// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package secret reads the password material used to seal and unseal
// tokens: a single secret from the environment, a file or the terminal, or a
// keyring file holding one entry per password id.
package secret

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// DefaultEnvVar holds the password when no other source is configured.
const DefaultEnvVar = "IRON_PASSWORD"

var (
	// ErrNotSet is returned when a password source exists but holds no secret.
	ErrNotSet = errors.New("secret not set")
	// ErrNotTerminal is returned by Prompt when input is not a terminal.
	ErrNotTerminal = errors.New("input is not a terminal")
)

// FromEnv returns the value of the environment variable name.
func FromEnv(name string) (string, error) {
	if name == "" {
		name = DefaultEnvVar
	}
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: $%s", ErrNotSet, name)
	}
	return value, nil
}

// FromFile reads a secret from path. A single trailing newline is stripped so
// files written by editors and `echo` work.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading secret file: %w", err)
	}

	value := strings.TrimSuffix(string(data), "\n")
	value = strings.TrimSuffix(value, "\r")
	if value == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrNotSet, path)
	}
	return value, nil
}

// Prompt writes prompt to out and reads a secret from the terminal behind fd
// without echoing it.
func Prompt(fd int, out io.Writer, prompt string) (string, error) {
	if !term.IsTerminal(fd) {
		return "", ErrNotTerminal
	}

	fmt.Fprint(out, prompt)
	value, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("error reading secret: %w", err)
	}
	if len(value) == 0 {
		return "", ErrNotSet
	}
	return string(value), nil
}
