package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
)

// Storages groups the server-side repositories.
type Storages struct {
	StoryRepository StoryRepository
	UserRepository  UserRepository
	MediaStorage    MediaStorage

	db *DB
}

// NewStorages wires PostgreSQL repositories when cfg.DSN is set and
// in-memory ones otherwise. Photos always go to cfg.MediaDir.
func NewStorages(ctx context.Context, cfg config.ServerStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	media, err := NewFileMediaStorage(cfg.MediaDir, logger)
	if err != nil {
		return nil, err
	}

	if cfg.DSN == "" {
		logger.Warn().Msg("no database configured, using in-memory storage")
		return &Storages{
			StoryRepository: NewMemoryStoryRepository(),
			UserRepository:  NewMemoryUserRepository(),
			MediaStorage:    media,
		}, nil
	}

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		StoryRepository: NewStoryRepository(db, logger),
		UserRepository:  NewUserRepository(db, logger),
		MediaStorage:    media,
		db:              db,
	}, nil
}

// Close releases the database handle, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
