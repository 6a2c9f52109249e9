// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// StructuredFileConfig is the layout of a config file.
type StructuredFileConfig struct {
	Iron struct {
		Encryption fileSlot `json:"encryption" yaml:"encryption"`
		Integrity  fileSlot `json:"integrity" yaml:"integrity"`

		TTL             Duration `json:"ttl" yaml:"ttl"`
		TimestampSkew   Duration `json:"timestamp_skew" yaml:"timestamp_skew"`
		LocaltimeOffset Duration `json:"localtime_offset" yaml:"localtime_offset"`
	} `json:"iron,omitempty" yaml:"iron,omitempty"`

	Password struct {
		ID      string `json:"id" yaml:"id"`
		Env     string `json:"env" yaml:"env"`
		File    string `json:"file" yaml:"file"`
		Keyring string `json:"keyring" yaml:"keyring"`
	} `json:"password,omitempty" yaml:"password,omitempty"`

	Log struct {
		Level string `json:"level" yaml:"level"`
	} `json:"log,omitempty" yaml:"log,omitempty"`
}

type fileSlot struct {
	Algorithm         string `json:"algorithm" yaml:"algorithm"`
	SaltBits          int    `json:"salt_bits" yaml:"salt_bits"`
	Iterations        int    `json:"iterations" yaml:"iterations"`
	MinPasswordLength int    `json:"min_password_length" yaml:"min_password_length"`
	KDF               string `json:"kdf" yaml:"kdf"`
}

func (s fileSlot) slot() Slot {
	return Slot(s)
}

// parseFile reads a config file. Unknown keys are rejected.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fileCfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	cfg := &StructuredConfig{
		Iron: Iron{
			Encryption:      fileCfg.Iron.Encryption.slot(),
			Integrity:       fileCfg.Iron.Integrity.slot(),
			TTL:             time.Duration(fileCfg.Iron.TTL),
			TimestampSkew:   time.Duration(fileCfg.Iron.TimestampSkew),
			LocaltimeOffset: time.Duration(fileCfg.Iron.LocaltimeOffset),
		},
		Password: Password{
			ID:      fileCfg.Password.ID,
			Env:     fileCfg.Password.Env,
			File:    fileCfg.Password.File,
			Keyring: fileCfg.Password.Keyring,
		},
		Log: Log{
			Level: fileCfg.Log.Level,
		},
		ConfigFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports unmarshaling from
// strings like "1h", "30s", or from a number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.ShortTag() {
	case "!!int", "!!float":
		var n float64
		if err := value.Decode(&n); err != nil {
			return err
		}
		*d = Duration(time.Duration(n))
		return nil
	default:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		tmp, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
