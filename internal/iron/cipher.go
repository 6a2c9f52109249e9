// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package iron

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Encrypt derives a key from password with opts and encrypts data with it.
// The returned Key carries the salt and IV the receiver needs.
func Encrypt(password string, opts KeyOptions, data []byte) ([]byte, Key, error) {
	if _, err := resolveAlgorithm(opts.Algorithm, KindCipher); err != nil {
		return nil, Key{}, err
	}
	key, err := GenerateKey(password, opts)
	if err != nil {
		return nil, Key{}, err
	}

	encrypted, err := encryptBytes(opts.Algorithm, key, data)
	if err != nil {
		return nil, Key{}, err
	}
	return encrypted, key, nil
}

// Decrypt derives the key from password with opts, which must carry the salt
// and IV used by Encrypt, and decrypts data.
func Decrypt(password string, opts KeyOptions, data []byte) ([]byte, error) {
	if _, err := resolveAlgorithm(opts.Algorithm, KindCipher); err != nil {
		return nil, err
	}
	key, err := GenerateKey(password, opts)
	if err != nil {
		return nil, err
	}
	return decryptBytes(opts.Algorithm, key, data)
}

func encryptBytes(algorithm string, key Key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key.Key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	if len(key.IV) != block.BlockSize() {
		return nil, fmt.Errorf("%w: iv must be %d bytes", ErrConfiguration, block.BlockSize())
	}

	switch algorithm {
	case AES256CBC:
		padded := pkcs7Pad(plaintext, block.BlockSize())
		out := make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, key.IV).CryptBlocks(out, padded)
		return out, nil
	case AES128CTR:
		out := make([]byte, len(plaintext))
		cipher.NewCTR(block, key.IV).XORKeyStream(out, plaintext)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported cipher: %q", ErrConfiguration, algorithm)
	}
}

func decryptBytes(algorithm string, key Key, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key.Key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	if len(key.IV) != block.BlockSize() {
		return nil, fmt.Errorf("%w: iv must be %d bytes", ErrDecryption, block.BlockSize())
	}

	switch algorithm {
	case AES256CBC:
		if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
			return nil, fmt.Errorf("%w: ciphertext is not a whole number of blocks", ErrDecryption)
		}
		out := make([]byte, len(ciphertext))
		cipher.NewCBCDecrypter(block, key.IV).CryptBlocks(out, ciphertext)
		return pkcs7Unpad(out, block.BlockSize())
	case AES128CTR:
		out := make([]byte, len(ciphertext))
		cipher.NewCTR(block, key.IV).XORKeyStream(out, ciphertext)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported cipher: %q", ErrConfiguration, algorithm)
	}
}

// pkcs7Pad always appends between 1 and blockSize bytes, each holding the
// pad length.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(append(make([]byte, 0, len(data)+n), data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrDecryption)
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
		}
	}
	return data[:len(data)-n], nil
}
