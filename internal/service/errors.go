// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrNoPasswordSource = errors.New("no password source configured")
	ErrNoSealPassword   = errors.New("no password configured for sealing")
)
