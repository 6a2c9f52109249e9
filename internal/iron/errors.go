// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package iron

import "errors"

// invalidToken is the only text a caller ever sees for a token that failed to
// parse or to authenticate, so the two cannot be told apart from the message.
const invalidToken = "iron: invalid token"

// tokenError is an opaque token rejection. Distinct values are still
// distinguishable with [errors.Is].
type tokenError struct {
	kind string
}

func (e *tokenError) Error() string {
	return invalidToken
}

// Sentinel errors returned by the package. Match them with [errors.Is].
var (
	// ErrConfiguration covers invalid options, password policy violations and
	// unknown password ids. It is caller misconfiguration and never retried.
	ErrConfiguration = errors.New("iron: configuration error")

	// ErrParse is returned for a malformed token or an unsupported format
	// version. It is returned unwrapped.
	ErrParse error = &tokenError{kind: "parse"}

	// ErrAuthentication is returned when the token MAC does not verify.
	// It is returned unwrapped and reads the same as [ErrParse].
	ErrAuthentication error = &tokenError{kind: "authentication"}

	// ErrExpired is returned for an authentic token whose expiration passed.
	ErrExpired = errors.New("iron: expired seal")

	// ErrDecoding is returned when authenticated content cannot be decrypted
	// or is not valid JSON for the target.
	ErrDecoding = errors.New("iron: invalid payload")

	// ErrDecryption is returned by the cipher layer for ciphertext that does
	// not decrypt to correctly padded plaintext.
	ErrDecryption = errors.New("iron: decryption failed")
)
