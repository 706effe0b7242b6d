// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package adapter

import "errors"

var (
	// ErrBadRequest is returned when the suggestion service rejects the
	// request payload.
	ErrBadRequest = errors.New("suggestion service rejected request")

	// ErrUnauthorized is returned when the suggestion service refuses the
	// caller's credentials.
	ErrUnauthorized = errors.New("suggestion service unauthorized")

	// ErrUnavailable is returned when the suggestion service cannot be
	// reached or answers with a gateway error.
	ErrUnavailable = errors.New("suggestion service unavailable")

	// ErrInternalServerError is returned when the suggestion service
	// fails internally.
	ErrInternalServerError = errors.New("suggestion service internal error")
)
