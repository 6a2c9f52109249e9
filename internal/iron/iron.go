// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package iron

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Seal encodes payload as JSON, encrypts it with a key derived from
// password and returns the MAC protected token. password.ID is embedded in
// the token so that Unseal can pick the same password from a [Keyring].
func Seal(payload any, password Password, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if err := password.validateID(); err != nil {
		return "", err
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	encrypted, key, err := Encrypt(password.encryptionSecret(), opts.Encryption, plaintext)
	if err != nil {
		return "", fmt.Errorf("encrypt payload: %w", err)
	}

	var expiration string
	if opts.TTL > 0 {
		expiration = strconv.FormatInt(opts.now().Add(opts.TTL).UnixMilli(), 10)
	}

	sealed := Sealed{
		Prefix:         MACPrefix,
		PasswordID:     password.ID,
		EncryptionSalt: key.Salt,
		EncryptionIV:   encodeB64(key.IV),
		EncryptedData:  encodeB64(encrypted),
		Expiration:     expiration,
	}

	mac, err := HMACWithPassword(password.integritySecret(), opts.Integrity, sealed.MACBase())
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	sealed.HMACSalt = mac.Salt
	sealed.HMAC = mac.Digest

	return sealed.String(), nil
}

// Unseal verifies token, decrypts it with the password source returns for
// the token's password id and unmarshals the payload into target, which must be
// a non-nil pointer as for [encoding/json.Unmarshal].
//
// The MAC is verified before anything else in the token is used. Errors
// match [ErrParse], [ErrConfiguration], [ErrAuthentication], [ErrExpired] or
// [ErrDecoding].
func Unseal(token string, source PasswordSource, opts Options, target any) error {
	plaintext, err := unseal(token, source, opts)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(plaintext, target); err != nil {
		var invalid *json.InvalidUnmarshalError
		if errors.As(err, &invalid) {
			return fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		return fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	return nil
}

// UnsealRaw is Unseal without the final unmarshalling. The returned JSON is
// guaranteed to be valid.
func UnsealRaw(token string, source PasswordSource, opts Options) (json.RawMessage, error) {
	plaintext, err := unseal(token, source, opts)
	if err != nil {
		return nil, err
	}
	if !json.Valid(plaintext) {
		return nil, fmt.Errorf("%w: payload is not valid JSON", ErrDecoding)
	}
	return plaintext, nil
}

func unseal(token string, source PasswordSource, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("%w: missing password source", ErrConfiguration)
	}

	sealed, err := ParseSealed(token)
	if err != nil {
		return nil, err
	}

	password, ok := source.Lookup(sealed.PasswordID)
	if !ok {
		return nil, fmt.Errorf("%w: cannot find password: %q", ErrConfiguration, sealed.PasswordID)
	}

	if err := verifySealed(sealed, password, opts.Integrity); err != nil {
		return nil, err
	}

	if sealed.Expiration != "" {
		expiration, err := parseExpiration(sealed.Expiration)
		if err != nil {
			return nil, err
		}
		if opts.now().After(expiration.Add(opts.TimestampSkew)) {
			return nil, ErrExpired
		}
	}

	if sealed.EncryptionSalt == "" {
		return nil, ErrParse
	}
	iv, err := decodeB64(sealed.EncryptionIV)
	if err != nil {
		return nil, ErrParse
	}
	encrypted, err := decodeB64(sealed.EncryptedData)
	if err != nil {
		return nil, ErrParse
	}

	encryption := opts.Encryption
	encryption.Salt = sealed.EncryptionSalt
	encryption.IV = nil
	key, err := GenerateKey(password.encryptionSecret(), encryption)
	if err != nil {
		return nil, err
	}
	key.IV = iv

	plaintext, err := decryptBytes(encryption.Algorithm, key, encrypted)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	return plaintext, nil
}

// verifySealed derives the integrity key from the token's MAC salt and
// checks the token MAC.
func verifySealed(sealed Sealed, password Password, opts KeyOptions) error {
	if sealed.HMACSalt == "" {
		return ErrAuthentication
	}
	candidate, err := decodeB64(sealed.HMAC)
	if err != nil {
		return ErrAuthentication
	}

	opts.Salt = sealed.HMACSalt
	opts.IV = nil
	key, err := GenerateKey(password.integritySecret(), opts)
	if err != nil {
		return err
	}

	ok, err := verifyMAC(opts.Algorithm, key.Key, sealed.MACBase(), candidate)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAuthentication
	}
	return nil
}

func parseExpiration(s string) (time.Time, error) {
	for _, c := range s {
		if c < '0' || c > '9' {
			return time.Time{}, ErrParse
		}
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, ErrParse
	}
	return time.UnixMilli(ms), nil
}
