// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package iron

import (
	"fmt"
	"time"
)

// Key derivation functions.
const (
	// KDFPBKDF2 is PBKDF2 with HMAC-SHA1, the function the Fe26.2 format uses.
	KDFPBKDF2 = "pbkdf2-sha1"

	// KDFArgon2id is a memory-hard alternative. Tokens derived with it can
	// only be unsealed by peers configured the same way.
	KDFArgon2id = "argon2id"
)

const (
	defaultSaltBits          = 256
	defaultIterations        = 1
	defaultMinPasswordLength = 32

	defaultArgon2Memory  = 64 * 1024 // KiB
	defaultArgon2Threads = 4

	// RecommendedIterations is the lowest PBKDF2 iteration count worth
	// using outside of legacy interop.
	RecommendedIterations = 10000
)

// KeyOptions configures the derivation of one key (encryption or integrity).
type KeyOptions struct {
	// Algorithm names an entry of the algorithm registry.
	Algorithm string

	// SaltBits is the size of a generated salt. Ignored when Salt is set.
	SaltBits int

	// Salt pins the derivation salt. Empty means generate one.
	Salt string

	// IV pins the initialization vector. Nil means generate one when the
	// algorithm uses an IV.
	IV []byte

	// Iterations is the PBKDF2 iteration count, or the Argon2 time cost.
	Iterations int

	// MinPasswordLength is the shortest secret, in characters, accepted.
	MinPasswordLength int

	// KDF selects the key derivation function. Empty means KDFPBKDF2.
	KDF string

	// Argon2Memory (KiB) and Argon2Threads apply only to KDFArgon2id.
	Argon2Memory  uint32
	Argon2Threads uint8
}

// Options is the configuration of one Seal or Unseal call. It is passed by
// value and never modified by the package.
type Options struct {
	Encryption KeyOptions
	Integrity  KeyOptions

	// TTL sets the token lifetime on Seal. Zero means the token never expires.
	TTL time.Duration

	// TimestampSkew is the grace period allowed past expiration on Unseal.
	TimestampSkew time.Duration

	// LocaltimeOffset is added to the local clock on both Seal and Unseal.
	LocaltimeOffset time.Duration

	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns the Fe26.2 reference defaults: aes-256-cbc and
// sha256, 256-bit salts, minimum password length of 32 and one PBKDF2
// iteration.
//
// One iteration exists for compatibility with other iron implementations
// and is weak. New deployments should raise Iterations to at least
// [RecommendedIterations] on both slots.
func DefaultOptions() Options {
	return Options{
		Encryption: KeyOptions{
			Algorithm:         AES256CBC,
			SaltBits:          defaultSaltBits,
			Iterations:        defaultIterations,
			MinPasswordLength: defaultMinPasswordLength,
			KDF:               KDFPBKDF2,
		},
		Integrity: KeyOptions{
			Algorithm:         SHA256,
			SaltBits:          defaultSaltBits,
			Iterations:        defaultIterations,
			MinPasswordLength: defaultMinPasswordLength,
			KDF:               KDFPBKDF2,
		},
	}
}

// Validate reports the first invalid field of o, wrapped in ErrConfiguration.
func (o Options) Validate() error {
	if err := o.Encryption.validate(KindCipher); err != nil {
		return fmt.Errorf("encryption: %w", err)
	}
	if err := o.Integrity.validate(KindMAC); err != nil {
		return fmt.Errorf("integrity: %w", err)
	}
	if o.Encryption.Salt != "" && o.Encryption.Salt == o.Integrity.Salt {
		return fmt.Errorf("%w: encryption and integrity keys must not share a salt", ErrConfiguration)
	}
	if o.TTL < 0 {
		return fmt.Errorf("%w: negative ttl", ErrConfiguration)
	}
	if o.TimestampSkew < 0 {
		return fmt.Errorf("%w: negative timestamp skew", ErrConfiguration)
	}
	return nil
}

// IsWeak reports whether either slot uses fewer PBKDF2 iterations than
// [RecommendedIterations].
func (o Options) IsWeak() bool {
	weak := func(k KeyOptions) bool {
		return k.kdf() == KDFPBKDF2 && k.Iterations < RecommendedIterations
	}
	return weak(o.Encryption) || weak(o.Integrity)
}

func (o Options) now() time.Time {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	return now().Add(o.LocaltimeOffset)
}

func (k KeyOptions) validate(kind AlgorithmKind) error {
	alg, err := resolveAlgorithm(k.Algorithm, kind)
	if err != nil {
		return err
	}
	if k.Salt == "" && k.SaltBits <= 0 {
		return fmt.Errorf("%w: missing both salt and salt bits", ErrConfiguration)
	}
	if k.SaltBits < 0 {
		return fmt.Errorf("%w: negative salt bits", ErrConfiguration)
	}
	if k.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be at least 1", ErrConfiguration)
	}
	if k.MinPasswordLength < 0 {
		return fmt.Errorf("%w: negative minimum password length", ErrConfiguration)
	}
	if k.IV != nil && alg.IVBits > 0 && len(k.IV)*8 != alg.IVBits {
		return fmt.Errorf("%w: iv must be %d bits for %s", ErrConfiguration, alg.IVBits, alg.Name)
	}
	switch k.kdf() {
	case KDFPBKDF2, KDFArgon2id:
	default:
		return fmt.Errorf("%w: unknown kdf: %q", ErrConfiguration, k.KDF)
	}
	return nil
}

func (k KeyOptions) kdf() string {
	if k.KDF == "" {
		return KDFPBKDF2
	}
	return k.KDF
}
