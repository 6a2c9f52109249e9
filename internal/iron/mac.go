// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package iron

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"hash"
)

// MAC is a keyed digest together with the salt its key was derived with.
type MAC struct {
	// Digest is the base64url encoded HMAC, without padding.
	Digest string
	Salt   string
}

// HMACWithPassword derives an integrity key from password with opts and
// computes the MAC of data.
func HMACWithPassword(password string, opts KeyOptions, data string) (MAC, error) {
	if _, err := resolveAlgorithm(opts.Algorithm, KindMAC); err != nil {
		return MAC{}, err
	}
	key, err := GenerateKey(password, opts)
	if err != nil {
		return MAC{}, err
	}
	sum, err := computeMAC(opts.Algorithm, key.Key, data)
	if err != nil {
		return MAC{}, err
	}
	return MAC{Digest: encodeB64(sum), Salt: key.Salt}, nil
}

func computeMAC(algorithm string, key []byte, data string) ([]byte, error) {
	newHash, err := macHash(algorithm)
	if err != nil {
		return nil, err
	}
	h := hmac.New(newHash, key)
	h.Write([]byte(data))
	return h.Sum(nil), nil
}

// verifyMAC recomputes the MAC of data and compares it with candidate in
// constant time.
func verifyMAC(algorithm string, key []byte, data string, candidate []byte) (bool, error) {
	sum, err := computeMAC(algorithm, key, data)
	if err != nil {
		return false, err
	}
	return hmac.Equal(sum, candidate), nil
}

func macHash(algorithm string) (func() hash.Hash, error) {
	switch algorithm {
	case SHA256:
		return sha256.New, nil
	default:
		return nil, fmt.Errorf("%w: unsupported mac algorithm: %q", ErrConfiguration, algorithm)
	}
}
