// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")

	ErrValidationEmptyClientID     = errors.New("client id is required")
	ErrValidationEmptyIdentifier   = errors.New("drive unique identifier is required")
	ErrValidationInvalidDriveType  = errors.New("unknown drive type")
	ErrValidationEmptyPath         = errors.New("destination path is required")
	ErrValidationPathNotAbsolute   = errors.New("destination path must be absolute")
	ErrValidationInvalidColor      = errors.New("color must be a 6-digit hex value")
	ErrValidationNoFilesProvided   = errors.New("no files provided")
	ErrValidationNoPlansProvided   = errors.New("no plans provided")
	ErrValidationInvalidStep       = errors.New("invalid plan step")

	// ErrNoUserInContext is returned by auto-capture when the request
	// context carries no authenticated user.
	ErrNoUserInContext = errors.New("no user in context")
)
