// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package iron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSealed_Fields(t *testing.T) {
	s, err := ParseSealed("Fe26.2*id*salt*iv*data*123*hsalt*mac")
	require.NoError(t, err)

	assert.Equal(t, Sealed{
		Prefix:         "Fe26.2",
		PasswordID:     "id",
		EncryptionSalt: "salt",
		EncryptionIV:   "iv",
		EncryptedData:  "data",
		Expiration:     "123",
		HMACSalt:       "hsalt",
		HMAC:           "mac",
	}, s)
	assert.Equal(t, "Fe26.2*id*salt*iv*data*123", s.MACBase())
	assert.Equal(t, "Fe26.2*id*salt*iv*data*123*hsalt*mac", s.String())
}

func TestParseSealed_EmptyOptionalFields(t *testing.T) {
	s, err := ParseSealed("Fe26.2**salt*iv*data**hsalt*mac")
	require.NoError(t, err)
	assert.Empty(t, s.PasswordID)
	assert.Empty(t, s.Expiration)
	assert.Equal(t, "Fe26.2**salt*iv*data**hsalt*mac", s.String())
}

func TestParseSealed_Errors(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "too few fields", token: "Fe26.2*id*salt*iv*data*123*hsalt"},
		{name: "too many fields", token: "Fe26.2*id*salt*iv*data*123*hsalt*mac*extra"},
		{name: "older version", token: "Fe26.1*id*salt*iv*data*123*hsalt*mac"},
		{name: "unknown version", token: "Fe27.0*id*salt*iv*data*123*hsalt*mac"},
		{name: "prefix case", token: "fe26.2*id*salt*iv*data*123*hsalt*mac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSealed(tt.token)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestBase64_RawURLAndStrict(t *testing.T) {
	encoded := encodeB64([]byte{0xfb, 0xff, 0xfe})
	assert.Equal(t, "-__-", encoded)

	decoded, err := decodeB64("-__-")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xfb, 0xff, 0xfe}, decoded)

	_, err = decodeB64("+//+")
	assert.Error(t, err, "standard alphabet must be rejected")

	_, err = decodeB64("AB==")
	assert.Error(t, err, "padding must be rejected")

	// "AB" carries non-zero trailing bits; "AA" is the canonical form
	_, err = decodeB64("AB")
	assert.Error(t, err)
	_, err = decodeB64("AA")
	assert.NoError(t, err)
}
