package config

import "time"

const (
	defaultClientDSN      = "stories.db"
	defaultAdapterAddress = "http://localhost:8080"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-story-sync",
			TokenDuration: 24 * time.Hour,
		},
		Storage: Storage{
			Files: Files{MediaDir: "media"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			GRPCAddress:    "localhost:9090",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    defaultAdapterAddress,
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			SyncInterval:  10 * time.Second,
			FetchTimeout:  15 * time.Second,
			NoveltyWindow: 30 * time.Second,
			ProbeInterval: 5 * time.Second,
		},
		Notify: Notify{
			Channel: "stories:new",
		},
	}
}
