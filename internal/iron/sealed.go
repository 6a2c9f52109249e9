// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package iron

import (
	"encoding/base64"
	"strings"
)

// MACPrefix is the format version tag every token starts with.
const MACPrefix = "Fe26.2"

const (
	delimiter   = "*"
	fieldsCount = 8
)

var b64 = base64.RawURLEncoding.Strict()

// Sealed is a token split into its fields. Binary fields hold their
// base64url text exactly as it appears on the wire, so the MAC base string
// is rebuilt byte for byte.
type Sealed struct {
	Prefix         string
	PasswordID     string
	EncryptionSalt string
	EncryptionIV   string
	EncryptedData  string
	Expiration     string
	HMACSalt       string
	HMAC           string
}

// ParseSealed splits token into fields. It returns [ErrParse] unless token
// has exactly eight fields and starts with [MACPrefix].
func ParseSealed(token string) (Sealed, error) {
	parts := strings.Split(token, delimiter)
	if len(parts) != fieldsCount {
		return Sealed{}, ErrParse
	}
	if parts[0] != MACPrefix {
		return Sealed{}, ErrParse
	}

	return Sealed{
		Prefix:         parts[0],
		PasswordID:     parts[1],
		EncryptionSalt: parts[2],
		EncryptionIV:   parts[3],
		EncryptedData:  parts[4],
		Expiration:     parts[5],
		HMACSalt:       parts[6],
		HMAC:           parts[7],
	}, nil
}

// MACBase returns the signed part of the token: the first six fields.
func (s Sealed) MACBase() string {
	return strings.Join([]string{
		s.Prefix,
		s.PasswordID,
		s.EncryptionSalt,
		s.EncryptionIV,
		s.EncryptedData,
		s.Expiration,
	}, delimiter)
}

// String returns the token in wire form.
func (s Sealed) String() string {
	return strings.Join([]string{s.MACBase(), s.HMACSalt, s.HMAC}, delimiter)
}

func encodeB64(b []byte) string {
	return b64.EncodeToString(b)
}

func decodeB64(s string) ([]byte, error) {
	return b64.DecodeString(s)
}
