// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/seal_service_mock.go -package=mock

import (
	"context"
	"encoding/json"
)

// SealService seals and unseals tokens with the configured options and
// passwords. Implementations are safe for concurrent use.
type SealService interface {
	// Seal encodes payload into a new token protected by the sealing password.
	Seal(ctx context.Context, payload any) (string, error)
	// Unseal verifies token and decodes its payload into target.
	Unseal(ctx context.Context, token string, target any) error
	// UnsealRaw verifies token and returns its JSON payload.
	UnsealRaw(ctx context.Context, token string) (json.RawMessage, error)
}
