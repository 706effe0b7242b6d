// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package config

import "time"

// AgentConfig configures the device agent binary that scans local mounts
// and reports them to the server.
type AgentConfig struct {
	// Server holds the connection settings for the homie server.
	Server AgentServer `envPrefix:"AGENT_SERVER_"`

	// Storage holds the agent's local state database settings.
	Storage AgentStorage `envPrefix:"AGENT_STORAGE_"`

	// Scan holds mount-detection settings.
	Scan AgentScan `envPrefix:"AGENT_SCAN_"`
}

// AgentServer holds the agent-to-server connection settings.
type AgentServer struct {
	// BaseURL is the root URL of the homie server API.
	// Env: AGENT_SERVER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Token is the bearer token identifying the user, issued by the
	// external auth system.
	// Env: AGENT_SERVER_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds one report round trip.
	// Env: AGENT_SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// AgentStorage holds the local sqlite state settings. The state database
// keeps the device's stable client_id and the last reported drive set.
type AgentStorage struct {
	// StateDBPath is the sqlite file path, e.g.
	// "~/.local/state/homie/agent.db".
	// Env: AGENT_STORAGE_STATE_DB_PATH
	StateDBPath string `env:"STATE_DB_PATH"`
}

// AgentScan holds mount-table scanning settings.
type AgentScan struct {
	// MountTablePath is the mount listing consulted during a scan.
	// Defaults to /proc/mounts; overridable for tests and non-Linux
	// systems.
	// Env: AGENT_SCAN_MOUNT_TABLE_PATH
	MountTablePath string `env:"MOUNT_TABLE_PATH"`

	// CloudRoots lists locally synced cloud folders in the form
	// "provider=path", e.g. "onedrive=/home/user/OneDrive".
	// Env: AGENT_SCAN_CLOUD_ROOTS (comma-separated)
	CloudRoots []string `env:"CLOUD_ROOTS" envSeparator:","`
}

// GetAgentConfig loads and validates the agent configuration from
// environment variables.
func GetAgentConfig() (*AgentConfig, error) {
	cfg := &AgentConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

func (cfg *AgentConfig) validate() error {
	if cfg.Server.BaseURL == "" {
		return ErrInvalidAgentConfigs
	}
	if cfg.Storage.StateDBPath == "" {
		return ErrInvalidAgentConfigs
	}

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Scan.MountTablePath == "" {
		cfg.Scan.MountTablePath = "/proc/mounts"
	}

	return nil
}
