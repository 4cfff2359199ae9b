// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// story sync client and the development story server. It is populated by
// merging a .env file, environment variables, command-line flags, an optional
// JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds credentials and token parameters.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database and the media
	// file store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and timeouts of the story server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the remote story API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the timing of the client background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// Notify holds the new-story notification fan-out settings.
	Notify Notify `envPrefix:"NOTIFY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the media file store settings.
	Files Files `envPrefix:"FILES_"`
}

// App holds account and token configuration.
type App struct {
	// Token is a pre-issued bearer token used by the client instead of
	// logging in.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// Email and Password are the client's login credentials.
	// Env: APP_EMAIL, APP_PASSWORD
	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`

	// TokenSignKey is the secret key used by the server to sign and verify
	// JWT tokens. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "24h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Server holds network and timeout settings of the story server.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP API in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health service.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the database backend.
type DB struct {
	// DSN is the SQLite file path on the client and the PostgreSQL
	// connection string on the server (empty selects in-memory storage).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings of the server media store.
type Files struct {
	// MediaDir is the directory where uploaded photos are stored.
	// Env: STORAGE_FILES_MEDIA_DIR
	MediaDir string `env:"MEDIA_DIR"`
}

// Adapter holds the client's remote story API settings.
type Adapter struct {
	// HTTPAddress is the base URL of the story API (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the address of the gRPC health service. When set, the
	// network monitor probes it instead of the HTTP ping route.
	// Env: ADAPTER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the default timeout of outbound requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// StreamURL is the websocket URL of the live change stream. Empty derives
	// it from HTTPAddress, "off" disables the stream.
	// Env: ADAPTER_STREAM
	StreamURL string `env:"STREAM"`
}

// Workers holds the timing of the client background workers.
type Workers struct {
	// SyncInterval is the period of the TimerTick trigger.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// FetchTimeout bounds one full-collection fetch.
	// Env: WORKERS_FETCH_TIMEOUT
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT"`

	// NoveltyWindow is how recent a story must be to be notified about.
	// Env: WORKERS_NOVELTY_WINDOW
	NoveltyWindow time.Duration `env:"NOVELTY_WINDOW"`

	// ProbeInterval is the period of the network reachability probe.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Notify holds the notification fan-out settings.
type Notify struct {
	// RedisURL enables publishing new-story notifications to Redis
	// (e.g. "redis://localhost:6379/0").
	// Env: NOTIFY_REDIS_URL
	RedisURL string `env:"REDIS_URL"`

	// Channel is the Redis pub/sub channel.
	// Env: NOTIFY_REDIS_CHANNEL
	Channel string `env:"REDIS_CHANNEL"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. The first source that sets a field wins:
//  1. Environment variables (after loading an optional .env file)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(dotEnvFile).
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
