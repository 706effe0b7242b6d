// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package config

import "time"

// Defaults applied by validate when a field was not set by any source.
const (
	defaultHTTPAddress    = "0.0.0.0:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultPlanTimeout    = 2 * time.Minute
	defaultParallelism    = 4
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, and fills in safe
// defaults for optional fields.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Executor.PlanTimeout == 0 {
		cfg.Executor.PlanTimeout = defaultPlanTimeout
	}
	if cfg.Executor.BatchParallelism == 0 {
		cfg.Executor.BatchParallelism = defaultParallelism
	}

	// The suggestion service is optional: without it the server still
	// registers drives, manages destinations, and executes
	// client-supplied plans.
	if cfg.Suggestion.BaseURL != "" && cfg.Suggestion.RequestTimeout == 0 {
		cfg.Suggestion.RequestTimeout = defaultRequestTimeout
	}

	return nil
}
