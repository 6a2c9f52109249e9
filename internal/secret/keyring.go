// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package secret

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-iron/internal/iron"
)

// ErrInvalidKeyring is returned for keyring files that cannot be used.
var ErrInvalidKeyring = errors.New("invalid keyring")

// keyringEntry is one keyring value. It is either a plain secret string or
// an object with separate encryption and integrity secrets.
type keyringEntry struct {
	Secret     string `json:"secret" yaml:"secret"`
	Encryption string `json:"encryption" yaml:"encryption"`
	Integrity  string `json:"integrity" yaml:"integrity"`
}

func (e *keyringEntry) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		e.Secret = s
		return nil
	}

	type plain keyringEntry
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	return dec.Decode((*plain)(e))
}

func (e *keyringEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&e.Secret)
	}

	type plain keyringEntry
	return value.Decode((*plain)(e))
}

// LoadKeyring reads a keyring file mapping password ids to secrets.
// Files ending in .yaml or .yml are YAML, anything else is JSON with
// comments allowed:
//
//	{
//	  // current
//	  "2": "a-secret-of-at-least-32-characters",
//	  "1": {"encryption": "...", "integrity": "..."},
//	}
func LoadKeyring(path string) (iron.Keyring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading keyring file: %w", err)
	}
	return ParseKeyring(data, filepath.Ext(path))
}

// ParseKeyring decodes keyring data in the format named by ext.
func ParseKeyring(data []byte, ext string) (iron.Keyring, error) {
	entries := make(map[string]keyringEntry)

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKeyring, err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &entries); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKeyring, err)
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no passwords", ErrInvalidKeyring)
	}

	keyring := make(iron.Keyring, len(entries))
	for id, entry := range entries {
		password := iron.Password{
			ID:         id,
			Secret:     entry.Secret,
			Encryption: entry.Encryption,
			Integrity:  entry.Integrity,
		}
		if _, ok := password.Lookup(id); !ok {
			return nil, fmt.Errorf("%w: password %q has no secret", ErrInvalidKeyring, id)
		}
		keyring[id] = password
	}
	return keyring, nil
}
