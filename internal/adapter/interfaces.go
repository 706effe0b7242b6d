// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

// Package adapter provides the transport-layer client for the external
// Suggestion Service.
//
// The primary abstraction is [SuggestionClient], which decouples the
// service layer from the wire protocol. The package ships an HTTP/REST
// implementation ([NewHTTPSuggestionAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling.
package adapter

import (
	"context"

	"github.com/MikVR7/Homie-sub000/models"
)

// SuggestionClient requests operation plans for unorganized files from the
// external suggestion service. Implementations are responsible for
// serialisation and for mapping transport-level errors to the sentinel
// values defined in this package.
//
// The suggestion service is an AI layer outside this system's trust
// boundary: responses are decoded into [models.OperationPlan] values and
// nothing else, and validation of the proposed plans is the caller's job.
type SuggestionClient interface {
	// Suggest sends the reachability context together with the files
	// awaiting organization and returns one proposed plan per file.
	Suggest(ctx context.Context, req models.SuggestionRequest) ([]models.OperationPlan, error)
}
