// Package iron seals JSON payloads into password protected tokens in the
// Fe26.2 format.
//
// A token is eight fields joined by '*':
//
//	Fe26.2*<password id>*<encryption salt>*<iv>*<ciphertext>*<expiration>*<hmac salt>*<hmac>
//
// The payload is encrypted with a key derived from the password and the
// encryption salt, and the first six fields are signed with HMAC under a
// second key derived from the same password and an independent salt. Binary
// fields are base64url without padding. Expiration is empty or a Unix time
// in milliseconds.
//
// Every function is pure and safe for concurrent use; the only shared
// resource is crypto/rand.
package iron
