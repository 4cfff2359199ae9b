package config

import (
	"fmt"
	"strings"
	"time"
)

// ClientApp holds the credentials the client authenticates with.
type ClientApp struct {
	// Token is a pre-issued bearer token; when empty the client logs in with
	// Email and Password at startup.
	Token    string
	Email    string
	Password string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the story API.
	HTTPAddress string
	// GRPCAddress is the optional gRPC health endpoint.
	GRPCAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// StreamURL is the websocket URL of the live change stream; empty when
	// the stream is disabled.
	StreamURL string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path of the local replica.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	SyncInterval  time.Duration
	FetchTimeout  time.Duration
	NoveltyWindow time.Duration
	ProbeInterval time.Duration
}

// ClientNotify contains new-story notification settings.
type ClientNotify struct {
	// RedisURL enables the Redis dispatcher when non-empty.
	RedisURL string
	Channel  string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Notify  ClientNotify
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	dsn := cfg.Storage.DB.DSN
	if dsn == "" {
		dsn = defaultClientDSN
	}

	return &ClientConfig{
		App: ClientApp{
			Token:    cfg.App.Token,
			Email:    cfg.App.Email,
			Password: cfg.App.Password,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			GRPCAddress:    cfg.Adapter.GRPCAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			StreamURL:      streamURL(cfg.Adapter),
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: dsn},
		},
		Workers: ClientWorkers{
			SyncInterval:  cfg.Workers.SyncInterval,
			FetchTimeout:  cfg.Workers.FetchTimeout,
			NoveltyWindow: cfg.Workers.NoveltyWindow,
			ProbeInterval: cfg.Workers.ProbeInterval,
		},
		Notify: ClientNotify{
			RedisURL: cfg.Notify.RedisURL,
			Channel:  cfg.Notify.Channel,
		},
	}
}

// streamURL resolves the live stream URL: "off" disables it, an explicit
// value is used as is, otherwise it is derived from the API address.
func streamURL(a Adapter) string {
	switch {
	case strings.EqualFold(a.StreamURL, "off"):
		return ""
	case a.StreamURL != "":
		return a.StreamURL
	case a.HTTPAddress == "":
		return ""
	}

	base := strings.TrimRight(a.HTTPAddress, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	default:
		base = "ws://" + base
	}

	return base + "/v1/stream"
}
