// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package service

import (
	"context"

	"github.com/MikVR7/Homie-sub000/internal/config"
	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/utils"
	"github.com/MikVR7/Homie-sub000/models"
)

// authService is the concrete implementation of [AuthService]. Account
// management and token issuing live in the external auth system; this
// service only verifies what that system signed.
type authService struct {
	// tokenSignKey is the HMAC secret used to verify JWT signatures. It
	// must match the key the external auth system signs with.
	tokenSignKey string

	// tokenIssuer is the expected "iss" claim. Tokens from any other
	// issuer are rejected.
	tokenIssuer string

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] from the app configuration.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, bad signature, malformed)
// is normalised to [ErrTokenIsExpiredOrInvalid] so that callers do not
// need to inspect low-level JWT errors.
func (a *authService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
