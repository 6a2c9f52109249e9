// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package iron

import "fmt"

// AlgorithmKind tells a cipher apart from a MAC algorithm.
type AlgorithmKind int

const (
	// KindCipher marks a block cipher/mode pair usable in the encryption slot.
	KindCipher AlgorithmKind = iota + 1
	// KindMAC marks a keyed hash usable in the integrity slot.
	KindMAC
)

// Algorithm names recognised by the registry.
const (
	AES256CBC = "aes-256-cbc"
	AES128CTR = "aes-128-ctr"
	SHA256    = "sha256"
)

// Algorithm describes the key material an algorithm needs.
// IVBits is zero for algorithms without an initialization vector.
type Algorithm struct {
	Name    string
	KeyBits int
	IVBits  int
	Kind    AlgorithmKind
}

var algorithms = map[string]Algorithm{
	AES256CBC: {Name: AES256CBC, KeyBits: 256, IVBits: 128, Kind: KindCipher},
	AES128CTR: {Name: AES128CTR, KeyBits: 128, IVBits: 128, Kind: KindCipher},
	SHA256:    {Name: SHA256, KeyBits: 256, Kind: KindMAC},
}

// LookupAlgorithm returns the registered algorithm called name.
func LookupAlgorithm(name string) (Algorithm, bool) {
	alg, ok := algorithms[name]
	return alg, ok
}

// resolveAlgorithm looks name up and checks that it has the expected kind.
func resolveAlgorithm(name string, kind AlgorithmKind) (Algorithm, error) {
	alg, ok := LookupAlgorithm(name)
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: unknown algorithm: %q", ErrConfiguration, name)
	}
	if alg.Kind != kind {
		return Algorithm{}, fmt.Errorf("%w: algorithm %q cannot be used here", ErrConfiguration, name)
	}
	return alg, nil
}
