// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Structured(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "secret")
	t.Setenv("APP_TOKEN_ISSUER", "homie-auth")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost:5432/homie")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9000")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "45s")
	t.Setenv("EXECUTOR_PLAN_TIMEOUT", "90s")
	t.Setenv("EXECUTOR_BATCH_PARALLELISM", "8")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "homie-auth", cfg.App.TokenIssuer)
	assert.Equal(t, "postgres://localhost:5432/homie", cfg.Storage.DB.DSN)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 90*time.Second, cfg.Executor.PlanTimeout)
	assert.Equal(t, 8, cfg.Executor.BatchParallelism)
}

func TestValidate_RequiresDSNAndSignKey(t *testing.T) {
	cfg := &StructuredConfig{}
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)

	cfg.Storage.DB.DSN = "postgres://localhost/homie"
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)

	cfg.App.TokenSignKey = "secret"
	require.NoError(t, cfg.validate())

	// Defaults filled for everything optional.
	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, defaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, defaultPlanTimeout, cfg.Executor.PlanTimeout)
	assert.Equal(t, defaultParallelism, cfg.Executor.BatchParallelism)
}

func TestParseJSON(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "config.json")
	contents := `{
		"app": {"token_sign_key": "k", "token_issuer": "iss", "version": "1.2.3"},
		"storage": {"db": {"dsn": "postgres://json/homie"}},
		"server": {"http_address": "0.0.0.0:8088", "request_timeout": "20s"},
		"suggestion": {"base_url": "http://suggest:9100", "request_timeout": "1m"},
		"executor": {"plan_timeout": "3m", "batch_parallelism": 2}
	}`
	require.NoError(t, os.WriteFile(jsonPath, []byte(contents), 0o600))

	cfg, err := parseJSON(jsonPath)
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.App.TokenSignKey)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "postgres://json/homie", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:8088", cfg.Server.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://suggest:9100", cfg.Suggestion.BaseURL)
	assert.Equal(t, time.Minute, cfg.Suggestion.RequestTimeout)
	assert.Equal(t, 3*time.Minute, cfg.Executor.PlanTimeout)
	assert.Equal(t, 2, cfg.Executor.BatchParallelism)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestNetAddress_Set(t *testing.T) {
	var addr NetAddress

	require.NoError(t, addr.Set("localhost:8080"))
	assert.Equal(t, "localhost:8080", addr.String())

	assert.Error(t, addr.Set("no-port"))
	assert.Error(t, addr.Set("localhost:0"))
	assert.Error(t, addr.Set("not-an-ip:8080"))
}
