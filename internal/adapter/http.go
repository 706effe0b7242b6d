// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MikVR7/Homie-sub000/internal/config"
	"github.com/MikVR7/Homie-sub000/models"
)

type httpSuggestionAdapter struct {
	client *resty.Client
}

// NewHTTPSuggestionAdapter constructs the HTTP implementation of
// [SuggestionClient] from the suggestion configuration.
func NewHTTPSuggestionAdapter(cfg config.Suggestion) SuggestionClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8090"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &httpSuggestionAdapter{client: cli}
}

// Suggest implements [SuggestionClient].
func (h *httpSuggestionAdapter) Suggest(ctx context.Context, req models.SuggestionRequest) ([]models.OperationPlan, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/suggest")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var sr models.SuggestionResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return nil, fmt.Errorf("decode suggestion response: %w", err)
	}

	return sr.Plans, nil
}
