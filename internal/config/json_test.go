package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")

	jsonBody := `{
		"app": {
			"email": "reader@example.com",
			"password": "password1",
			"token_sign_key": "jwt_secret",
			"token_issuer": "test_issuer",
			"token_duration": "1h"
		},
		"server": {
			"http_address": "localhost:8080",
			"grpc_address": "localhost:9090",
			"request_timeout": "30s"
		},
		"adapter": {
			"http_address": "http://localhost:8080",
			"request_timeout": "5s",
			"stream_url": "ws://localhost:8080/v1/stream"
		},
		"workers": {
			"sync_interval": "20s",
			"fetch_timeout": "15s",
			"novelty_window": "30s",
			"probe_interval": 5000000000
		},
		"notify": {
			"redis_url": "redis://localhost:6379/1",
			"redis_channel": "stories"
		},
		"storage": {
			"db": { "dsn": "stories.db" },
			"files": { "media_dir": "/var/media" }
		}
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "reader@example.com", cfg.App.Email)
	assert.Equal(t, "password1", cfg.App.Password)
	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "localhost:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "ws://localhost:8080/v1/stream", cfg.Adapter.StreamURL)

	assert.Equal(t, 20*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, 15*time.Second, cfg.Workers.FetchTimeout)
	assert.Equal(t, 30*time.Second, cfg.Workers.NoveltyWindow)
	assert.Equal(t, 5*time.Second, cfg.Workers.ProbeInterval)

	assert.Equal(t, "redis://localhost:6379/1", cfg.Notify.RedisURL)
	assert.Equal(t, "stories", cfg.Notify.Channel)

	assert.Equal(t, "stories.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/media", cfg.Storage.Files.MediaDir)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": `), 0o600))

	_, err := parseJSON(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"1m30s"`, want: 90 * time.Second},
		{name: "nanoseconds", input: `1000`, want: time.Microsecond},
		{name: "bad string", input: `"soon"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Duration(15 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"15s"`, string(data))
}
