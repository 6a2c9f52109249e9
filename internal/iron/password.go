// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package iron

import (
	"fmt"
	"regexp"
)

// DefaultPasswordID is the keyring entry used for tokens sealed without an id.
const DefaultPasswordID = "default"

var passwordIDPattern = regexp.MustCompile(`^\w*$`)

// Password is the secret material for one password id. Secret is used for
// both keys unless Encryption or Integrity overrides it.
type Password struct {
	ID         string
	Secret     string
	Encryption string
	Integrity  string
}

// Lookup implements [PasswordSource]. A single password answers every id.
func (p Password) Lookup(string) (Password, bool) {
	return p, p.encryptionSecret() != "" && p.integritySecret() != ""
}

func (p Password) encryptionSecret() string {
	if p.Encryption != "" {
		return p.Encryption
	}
	return p.Secret
}

func (p Password) integritySecret() string {
	if p.Integrity != "" {
		return p.Integrity
	}
	return p.Secret
}

func (p Password) validateID() error {
	return ValidatePasswordID(p.ID)
}

// ValidatePasswordID reports whether id may be embedded into a token: only
// letters, digits and underscores are allowed.
func ValidatePasswordID(id string) error {
	if !passwordIDPattern.MatchString(id) {
		return fmt.Errorf("%w: invalid password id: %q", ErrConfiguration, id)
	}
	return nil
}

// PasswordSource resolves the password a token names by id.
//
//go:generate mockgen -source=password.go -destination=../mock/password_source_mock.go -package=mock
type PasswordSource interface {
	// Lookup returns the password for id and whether one exists.
	Lookup(id string) (Password, bool)
}

// Keyring maps password ids to passwords for rotation. An empty id resolves
// to the [DefaultPasswordID] entry.
type Keyring map[string]Password

// Lookup implements [PasswordSource].
func (k Keyring) Lookup(id string) (Password, bool) {
	key := id
	if key == "" {
		key = DefaultPasswordID
	}
	p, ok := k[key]
	if !ok {
		return Password{}, false
	}
	p.ID = id
	return p, true
}

// PasswordFunc adapts a function to [PasswordSource].
type PasswordFunc func(id string) (Password, bool)

// Lookup implements [PasswordSource].
func (f PasswordFunc) Lookup(id string) (Password, bool) {
	return f(id)
}
