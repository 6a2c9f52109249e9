// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package iron

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	User string `json:"user"`
	Role string `json:"role"`
}

// fixedClock returns an Options clock that reads *now.
func fixedClock(now *time.Time) func() time.Time {
	return func() time.Time { return *now }
}

func sealAccount(t *testing.T, opts Options) string {
	t.Helper()
	token, err := Seal(account{User: "alice", Role: "admin"}, Password{Secret: testPassword}, opts)
	require.NoError(t, err)
	return token
}

func TestSeal_ExampleScenario(t *testing.T) {
	payload := map[string]any{"user": "alice", "role": "admin"}

	token, err := Seal(payload, Password{Secret: testPassword}, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(token, "Fe26.2*"))
	assert.Len(t, strings.Split(token, "*"), 8)

	var got map[string]any
	require.NoError(t, Unseal(token, Password{Secret: testPassword}, DefaultOptions(), &got))
	assert.Equal(t, payload, got)

	altered := "X" + testPassword[1:]
	err = Unseal(token, Password{Secret: altered}, DefaultOptions(), &got)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestSealUnseal_RoundTrip(t *testing.T) {
	ctr := DefaultOptions()
	ctr.Encryption.Algorithm = AES128CTR

	strong := DefaultOptions()
	strong.Encryption.Iterations = 3
	strong.Integrity.Iterations = 5
	strong.Encryption.SaltBits = 64

	argon := DefaultOptions()
	argon.Encryption.KDF = KDFArgon2id
	argon.Encryption.Argon2Memory = 1024
	argon.Encryption.Argon2Threads = 1

	optionSets := map[string]Options{
		"defaults":    DefaultOptions(),
		"aes-128-ctr": ctr,
		"iterations":  strong,
		"argon2id":    argon,
	}

	payloads := []any{
		map[string]any{"user": "alice", "role": "admin"},
		map[string]any{},
		[]any{"a", float64(1), true, nil},
		"plain string with * and unicode ✓",
		float64(42),
		true,
		nil,
	}

	for name, opts := range optionSets {
		for _, payload := range payloads {
			token, err := Seal(payload, Password{ID: "k1", Secret: testPassword}, opts)
			require.NoError(t, err, name)

			var got any
			require.NoError(t, Unseal(token, Password{Secret: testPassword}, opts, &got), name)
			assert.Equal(t, payload, got, name)
		}
	}
}

func TestSealUnseal_Struct(t *testing.T) {
	token := sealAccount(t, DefaultOptions())

	var got account
	require.NoError(t, Unseal(token, Password{Secret: testPassword}, DefaultOptions(), &got))
	assert.Equal(t, account{User: "alice", Role: "admin"}, got)
}

func TestSeal_FreshSaltsPerToken(t *testing.T) {
	t1 := sealAccount(t, DefaultOptions())
	t2 := sealAccount(t, DefaultOptions())
	assert.NotEqual(t, t1, t2)

	s, err := ParseSealed(t1)
	require.NoError(t, err)
	assert.NotEqual(t, s.EncryptionSalt, s.HMACSalt)
}

func TestSeal_DeterministicWithPinnedInputs(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	opts := DefaultOptions()
	opts.Encryption.Salt = "1111"
	opts.Encryption.IV = []byte("0123456789abcdef")
	opts.Integrity.Salt = "2222"
	opts.TTL = time.Minute
	opts.Now = fixedClock(&now)

	t1 := sealAccount(t, opts)
	t2 := sealAccount(t, opts)
	assert.Equal(t, t1, t2)

	s, err := ParseSealed(t1)
	require.NoError(t, err)
	assert.Equal(t, "1111", s.EncryptionSalt)
	assert.Equal(t, "MDEyMzQ1Njc4OWFiY2RlZg", s.EncryptionIV)
	assert.Equal(t, "1700000060000", s.Expiration)
	assert.Equal(t, "2222", s.HMACSalt)
}

func TestSeal_RejectsSharedSalt(t *testing.T) {
	opts := DefaultOptions()
	opts.Encryption.Salt = "same"
	opts.Integrity.Salt = "same"

	_, err := Seal("x", Password{Secret: testPassword}, opts)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestSeal_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name     string
		password Password
		mutate   func(o *Options)
	}{
		{name: "short password", password: Password{Secret: "short"}, mutate: func(*Options) {}},
		{name: "empty password", password: Password{}, mutate: func(*Options) {}},
		{name: "password id with delimiter", password: Password{ID: "a*b", Secret: testPassword}, mutate: func(*Options) {}},
		{name: "unknown algorithm", password: Password{Secret: testPassword}, mutate: func(o *Options) { o.Encryption.Algorithm = "rot13" }},
		{name: "mac in encryption slot", password: Password{Secret: testPassword}, mutate: func(o *Options) { o.Encryption.Algorithm = SHA256 }},
		{name: "cipher in integrity slot", password: Password{Secret: testPassword}, mutate: func(o *Options) { o.Integrity.Algorithm = AES256CBC }},
		{name: "negative ttl", password: Password{Secret: testPassword}, mutate: func(o *Options) { o.TTL = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)

			_, err := Seal("payload", tt.password, opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestSeal_UnmarshalablePayload(t *testing.T) {
	_, err := Seal(make(chan int), Password{Secret: testPassword}, DefaultOptions())
	assert.Error(t, err)
}

// flipChar replaces the character at i with a different base64url character.
func flipChar(s string, i int) string {
	replacement := byte('A')
	if s[i] == 'A' {
		replacement = 'B'
	}
	return s[:i] + string(replacement) + s[i+1:]
}

func TestUnseal_TamperDetection(t *testing.T) {
	token := sealAccount(t, DefaultOptions())
	fields := strings.Split(token, "*")

	// salts, iv, ciphertext and mac
	for _, field := range []int{2, 3, 4, 6, 7} {
		for i := range fields[field] {
			tampered := append([]string(nil), fields...)
			tampered[field] = flipChar(fields[field], i)

			var got account
			err := Unseal(strings.Join(tampered, "*"), Password{Secret: testPassword}, DefaultOptions(), &got)
			require.ErrorIs(t, err, ErrAuthentication, "field %d char %d", field, i)
			assert.Equal(t, account{}, got)
		}
	}
}

func TestUnseal_TamperedExpirationOrID(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	opts := DefaultOptions()
	opts.TTL = time.Hour
	opts.Now = fixedClock(&now)

	token, err := Seal("x", Password{ID: "one", Secret: testPassword}, opts)
	require.NoError(t, err)
	fields := strings.Split(token, "*")

	extended := append([]string(nil), fields...)
	extended[5] = "9999999999999"
	var got string
	assert.ErrorIs(t, Unseal(strings.Join(extended, "*"), Password{Secret: testPassword}, opts, &got), ErrAuthentication)

	renamed := append([]string(nil), fields...)
	renamed[1] = "two"
	assert.ErrorIs(t, Unseal(strings.Join(renamed, "*"), Password{Secret: testPassword}, opts, &got), ErrAuthentication)
}

func TestUnseal_ParseAndAuthenticationLookAlike(t *testing.T) {
	token := sealAccount(t, DefaultOptions())
	fields := strings.Split(token, "*")

	var got account
	parseErr := Unseal("garbage", Password{Secret: testPassword}, DefaultOptions(), &got)
	fields[7] = flipChar(fields[7], 0)
	authErr := Unseal(strings.Join(fields, "*"), Password{Secret: testPassword}, DefaultOptions(), &got)

	require.ErrorIs(t, parseErr, ErrParse)
	require.ErrorIs(t, authErr, ErrAuthentication)
	assert.NotErrorIs(t, parseErr, ErrAuthentication)
	assert.NotErrorIs(t, authErr, ErrParse)
	assert.Equal(t, parseErr.Error(), authErr.Error())
}

func TestUnseal_VersionGate(t *testing.T) {
	token := sealAccount(t, DefaultOptions())

	for _, prefix := range []string{"Fe26.1", "Fe26.3", "Fe27.2", "", "Fe26.2 "} {
		forged := prefix + strings.TrimPrefix(token, MACPrefix)

		var got account
		err := Unseal(forged, Password{Secret: testPassword}, DefaultOptions(), &got)
		assert.ErrorIs(t, err, ErrParse, "prefix %q", prefix)
	}
}

func TestUnseal_MalformedTokens(t *testing.T) {
	for _, token := range []string{"", "Fe26.2", "Fe26.2*a*b*c*d*e*f", "Fe26.2*a*b*c*d*e*f*g*h"} {
		var got any
		err := Unseal(token, Password{Secret: testPassword}, DefaultOptions(), &got)
		assert.ErrorIs(t, err, ErrParse, "token %q", token)
	}
}

func TestUnseal_Expiration(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	opts := DefaultOptions()
	opts.TTL = 1000 * time.Millisecond
	opts.Now = fixedClock(&now)

	token := sealAccount(t, opts)
	s, err := ParseSealed(token)
	require.NoError(t, err)
	assert.Equal(t, "1700000001000", s.Expiration)

	var got account
	require.NoError(t, Unseal(token, Password{Secret: testPassword}, opts, &got))

	// exactly at expiration the token is still valid
	now = now.Add(time.Second)
	require.NoError(t, Unseal(token, Password{Secret: testPassword}, opts, &got))

	now = now.Add(time.Millisecond)
	err = Unseal(token, Password{Secret: testPassword}, opts, &got)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestUnseal_TimestampSkewAndOffset(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	opts := DefaultOptions()
	opts.TTL = time.Second
	opts.Now = fixedClock(&now)
	token := sealAccount(t, opts)

	now = now.Add(30 * time.Second)
	var got account

	skewed := opts
	skewed.TimestampSkew = time.Minute
	assert.NoError(t, Unseal(token, Password{Secret: testPassword}, skewed, &got))
	assert.ErrorIs(t, Unseal(token, Password{Secret: testPassword}, opts, &got), ErrExpired)

	behind := opts
	behind.LocaltimeOffset = -time.Minute
	assert.NoError(t, Unseal(token, Password{Secret: testPassword}, behind, &got))
}

func TestUnseal_NoExpirationNeverExpires(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	opts := DefaultOptions()
	opts.Now = fixedClock(&now)
	token := sealAccount(t, opts)

	now = now.Add(100 * 365 * 24 * time.Hour)
	var got account
	assert.NoError(t, Unseal(token, Password{Secret: testPassword}, opts, &got))
}

func TestUnseal_PasswordRotation(t *testing.T) {
	oldSecret := strings.Repeat("o", 32)
	newSecret := strings.Repeat("n", 32)
	keyring := Keyring{
		"1": {Secret: oldSecret},
		"2": {Secret: newSecret},
	}

	token, err := Seal("payload", Password{ID: "2", Secret: newSecret}, DefaultOptions())
	require.NoError(t, err)

	var got string
	require.NoError(t, Unseal(token, keyring, DefaultOptions(), &got))
	assert.Equal(t, "payload", got)

	oldToken, err := Seal("old", Password{ID: "1", Secret: oldSecret}, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, Unseal(oldToken, keyring, DefaultOptions(), &got))
	assert.Equal(t, "old", got)

	unknown, err := Seal("payload", Password{ID: "3", Secret: newSecret}, DefaultOptions())
	require.NoError(t, err)
	err = Unseal(unknown, keyring, DefaultOptions(), &got)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestUnseal_DefaultKeyringEntry(t *testing.T) {
	token := sealAccount(t, DefaultOptions())

	var got account
	keyring := Keyring{DefaultPasswordID: {Secret: testPassword}}
	require.NoError(t, Unseal(token, keyring, DefaultOptions(), &got))
	assert.Equal(t, "alice", got.User)
}

func TestUnseal_SplitSecrets(t *testing.T) {
	password := Password{
		ID:         "split",
		Encryption: strings.Repeat("e", 32),
		Integrity:  strings.Repeat("i", 32),
	}
	token, err := Seal("payload", password, DefaultOptions())
	require.NoError(t, err)

	var got string
	require.NoError(t, Unseal(token, password, DefaultOptions(), &got))
	assert.Equal(t, "payload", got)

	// right integrity secret, wrong encryption secret: authentic but undecryptable
	wrongEncryption := password
	wrongEncryption.Encryption = strings.Repeat("x", 32)
	err = Unseal(token, wrongEncryption, DefaultOptions(), &got)
	assert.ErrorIs(t, err, ErrDecoding)

	wrongIntegrity := password
	wrongIntegrity.Integrity = strings.Repeat("x", 32)
	err = Unseal(token, wrongIntegrity, DefaultOptions(), &got)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestUnseal_PasswordFunc(t *testing.T) {
	token, err := Seal("payload", Password{ID: "abc", Secret: testPassword}, DefaultOptions())
	require.NoError(t, err)

	var asked string
	source := PasswordFunc(func(id string) (Password, bool) {
		asked = id
		return Password{Secret: testPassword}, true
	})

	var got string
	require.NoError(t, Unseal(token, source, DefaultOptions(), &got))
	assert.Equal(t, "abc", asked)
}

func TestUnseal_DecodingErrors(t *testing.T) {
	token := sealAccount(t, DefaultOptions())

	var wrongShape []string
	err := Unseal(token, Password{Secret: testPassword}, DefaultOptions(), &wrongShape)
	assert.ErrorIs(t, err, ErrDecoding)

	err = Unseal(token, Password{Secret: testPassword}, DefaultOptions(), nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestUnseal_MissingSource(t *testing.T) {
	token := sealAccount(t, DefaultOptions())

	var got account
	err := Unseal(token, nil, DefaultOptions(), &got)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestUnsealRaw(t *testing.T) {
	token := sealAccount(t, DefaultOptions())

	raw, err := UnsealRaw(token, Password{Secret: testPassword}, DefaultOptions())
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"alice","role":"admin"}`, string(raw))
}

func TestSealUnseal_Concurrent(t *testing.T) {
	done := make(chan error, 16)
	for i := 0; i < cap(done); i++ {
		go func() {
			token, err := Seal(map[string]int{"n": 1}, Password{Secret: testPassword}, DefaultOptions())
			if err != nil {
				done <- err
				return
			}
			var got map[string]int
			done <- Unseal(token, Password{Secret: testPassword}, DefaultOptions(), &got)
		}()
	}
	for i := 0; i < cap(done); i++ {
		assert.NoError(t, <-done)
	}
}
