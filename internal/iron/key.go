// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package iron

import (
	"crypto/rand"
	"crypto/sha1"
	"fmt"
	"io"
	"math/big"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// Key is derived key material together with the salt and IV it was derived
// with. A Key lives for a single Seal or Unseal call.
type Key struct {
	Key  []byte
	Salt string
	IV   []byte
}

// GenerateKey derives a key from password according to opts.
//
// The salt is opts.Salt when set, otherwise opts.SaltBits of fresh
// randomness rendered as a decimal string. The IV is opts.IV when set,
// otherwise fresh randomness of the algorithm's IV size, or nil for
// algorithms without one.
//
// Returns an error wrapping [ErrConfiguration] when opts are invalid or
// password is shorter than opts.MinPasswordLength.
func GenerateKey(password string, opts KeyOptions) (Key, error) {
	alg, ok := LookupAlgorithm(opts.Algorithm)
	if !ok {
		return Key{}, fmt.Errorf("%w: unknown algorithm: %q", ErrConfiguration, opts.Algorithm)
	}
	if err := opts.validate(alg.Kind); err != nil {
		return Key{}, err
	}

	if password == "" {
		return Key{}, fmt.Errorf("%w: empty password", ErrConfiguration)
	}
	if utf8.RuneCountInString(password) < opts.MinPasswordLength {
		return Key{}, fmt.Errorf("%w: password string too short (min %d characters required)",
			ErrConfiguration, opts.MinPasswordLength)
	}

	salt := opts.Salt
	if salt == "" {
		var err error
		if salt, err = randomSalt(opts.SaltBits); err != nil {
			return Key{}, err
		}
	}

	key := Key{
		Key:  deriveKey(password, salt, alg.KeyBits/8, opts),
		Salt: salt,
	}

	switch {
	case opts.IV != nil:
		key.IV = append([]byte(nil), opts.IV...)
	case alg.IVBits > 0:
		iv, err := randomBytes(alg.IVBits / 8)
		if err != nil {
			return Key{}, err
		}
		key.IV = iv
	}

	return key, nil
}

func deriveKey(password, salt string, keyLen int, opts KeyOptions) []byte {
	if opts.kdf() == KDFArgon2id {
		memory, threads := opts.Argon2Memory, opts.Argon2Threads
		if memory == 0 {
			memory = defaultArgon2Memory
		}
		if threads == 0 {
			threads = defaultArgon2Threads
		}
		return argon2.IDKey([]byte(password), []byte(salt), uint32(opts.Iterations), memory, threads, uint32(keyLen))
	}
	return pbkdf2.Key([]byte(password), []byte(salt), opts.Iterations, keyLen, sha1.New)
}

// randomSalt returns bits of randomness as a decimal string.
func randomSalt(bits int) (string, error) {
	b, err := randomBytes((bits + 7) / 8)
	if err != nil {
		return "", err
	}
	if extra := len(b)*8 - bits; extra > 0 {
		b[0] &= 0xff >> extra
	}
	return new(big.Int).SetBytes(b).String(), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}
