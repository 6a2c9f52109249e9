// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-iron/internal/iron"
	"github.com/MKhiriev/go-iron/internal/logger"
	"github.com/MKhiriev/go-iron/internal/utils"
)

type sealService struct {
	password iron.Password
	source   iron.PasswordSource
	opts     iron.Options

	traceIDs *utils.UUIDGenerator
	logger   *logger.Logger
}

// NewSealService binds opts and password material to a SealService.
//
// password is used by Seal and may be zero when the service only unseals.
// source resolves password ids on Unseal.
//
// Returns an error wrapping iron.ErrConfiguration if opts are invalid, or
// ErrNoPasswordSource if source is nil.
func NewSealService(password iron.Password, source iron.PasswordSource, opts iron.Options, logger *logger.Logger) (SealService, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid iron options: %w", err)
	}
	if source == nil {
		return nil, ErrNoPasswordSource
	}

	return &sealService{
		password: password,
		source:   source,
		opts:     opts,
		traceIDs: utils.NewUUIDGenerator(),
		logger:   logger,
	}, nil
}

// Seal encodes payload into a token.
//
// Returns the token or:
//   - ErrNoSealPassword if no sealing password is configured.
//   - ctx.Err() if ctx is done before sealing starts.
//   - A wrapped iron error (see iron.Seal).
func (s *sealService) Seal(ctx context.Context, payload any) (string, error) {
	ctx, log := s.withTrace(ctx, s.password.ID)

	if _, ok := s.password.Lookup(s.password.ID); !ok {
		log.Error().Msg("no password configured for sealing")
		return "", ErrNoSealPassword
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	token, err := iron.Seal(payload, s.password, s.opts)
	if err != nil {
		log.Err(err).Str("kind", errorKind(err)).Msg("seal failed")
		return "", fmt.Errorf("seal failed: %w", err)
	}

	log.Debug().Dur("ttl", s.opts.TTL).Msg("token sealed")
	return token, nil
}

// Unseal verifies token and decodes its payload into target.
//
// Returns ctx.Err() if ctx is done before unsealing starts, or an error
// matching one of the iron sentinels (see iron.Unseal).
func (s *sealService) Unseal(ctx context.Context, token string, target any) error {
	ctx, log := s.withTrace(ctx, tokenPasswordID(token))
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := iron.Unseal(token, s.source, s.opts, target); err != nil {
		log.Warn().Str("kind", errorKind(err)).Msg("unseal failed")
		return err
	}

	log.Debug().Msg("token unsealed")
	return nil
}

// UnsealRaw verifies token and returns its payload as JSON.
func (s *sealService) UnsealRaw(ctx context.Context, token string) (json.RawMessage, error) {
	ctx, log := s.withTrace(ctx, tokenPasswordID(token))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := iron.UnsealRaw(token, s.source, s.opts)
	if err != nil {
		log.Warn().Str("kind", errorKind(err)).Msg("unseal failed")
		return nil, err
	}

	log.Debug().Int("size", len(payload)).Msg("token unsealed")
	return payload, nil
}

// withTrace returns a child logger carrying the call's trace id and password
// id, and ctx with both the trace id and the logger attached. A trace id
// already present in ctx is reused.
func (s *sealService) withTrace(ctx context.Context, passwordID string) (context.Context, *logger.Logger) {
	traceID, ok := utils.GetTraceIDFromContext(ctx)
	if !ok {
		traceID = s.traceIDs.Generate()
		ctx = context.WithValue(ctx, utils.TraceIDCtxKey, traceID)
	}

	l := s.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID).Str("password_id", passwordID)
	})

	return l.WithContext(ctx), l
}

// tokenPasswordID returns the password id field of token, or "" when token
// is malformed. It is used for logging only.
func tokenPasswordID(token string) string {
	sealed, err := iron.ParseSealed(token)
	if err != nil {
		return ""
	}
	return sealed.PasswordID
}

// errorKind names the iron error class of err for logs. Token contents and
// secrets are never logged.
func errorKind(err error) string {
	switch {
	case errors.Is(err, iron.ErrParse):
		return "parse"
	case errors.Is(err, iron.ErrAuthentication):
		return "authentication"
	case errors.Is(err, iron.ErrExpired):
		return "expired"
	case errors.Is(err, iron.ErrDecoding):
		return "decoding"
	case errors.Is(err, iron.ErrConfiguration):
		return "configuration"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "context"
	default:
		return "unknown"
	}
}
