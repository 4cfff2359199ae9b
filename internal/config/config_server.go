// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ServerApp holds token settings of the story server.
type ServerApp struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
}

// ServerStorage holds storage settings of the story server.
type ServerStorage struct {
	// DSN is the PostgreSQL connection string; empty selects in-memory
	// repositories.
	DSN string
	// MediaDir is where uploaded photos are written.
	MediaDir string
}

// ServerConfig is the story server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	App     ServerApp
	Server  Server
	Storage ServerStorage
}

// GetServerConfig builds and validates the server-specific config view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)

	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	return &ServerConfig{
		App: ServerApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
		},
		Server: cfg.Server,
		Storage: ServerStorage{
			DSN:      cfg.Storage.DB.DSN,
			MediaDir: cfg.Storage.Files.MediaDir,
		},
	}
}
