// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

// storyRepository is the PostgreSQL-backed implementation of
// [StoryRepository] over the "stories" table.
type storyRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewStoryRepository constructs a [StoryRepository] on top of db.
func NewStoryRepository(db *DB, logger *logger.Logger) StoryRepository {
	logger.Debug().Msg("creating story repository")
	return &storyRepository{db: db, logger: logger}
}

func (r *storyRepository) ListStories(ctx context.Context) ([]models.Story, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectStories(r.db.builder).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	stories := make([]models.Story, 0)
	err = r.db.withRetry(ctx, "storyRepository.ListStories", func() error {
		stories = stories[:0]

		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			s, err := scanStory(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			stories = append(stories, s)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "storyRepository.ListStories").Msg("error listing stories")
		return nil, err
	}

	return stories, nil
}

func (r *storyRepository) GetStory(ctx context.Context, id string) (models.Story, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Select(storyColumns...).
		From(storiesTable).
		Where(sq.Eq{"story_id": id}).
		ToSql()
	if err != nil {
		return models.Story{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	story, err := scanStory(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Story{}, ErrStoryNotFound
		}
		log.Err(err).Str("func", "storyRepository.GetStory").Str("story_id", id).Msg("error reading story")
		return models.Story{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return story, nil
}

func (r *storyRepository) CreateStory(ctx context.Context, story models.Story) (models.Story, error) {
	log := logger.FromContext(ctx)

	query, args, err := insertStory(r.db.builder, story).ToSql()
	if err != nil {
		return models.Story{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&story.CreatedAt); err != nil {
		log.Err(err).Str("func", "storyRepository.CreateStory").Msg("error inserting story")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Story{}, ErrNoUserWasFound
		default:
			return models.Story{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	story.CreatedAt = story.CreatedAt.UTC()
	story.UpdatedAt = story.CreatedAt
	return story, nil
}

func (r *storyRepository) DeleteStory(ctx context.Context, id, ownerID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Delete(storiesTable).
		Where(sq.Eq{"story_id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "storyRepository.DeleteStory").Str("story_id", id).Msg("error deleting story")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	// nothing deleted: tell a missing story from a foreign one
	if _, err = r.GetStory(ctx, id); err != nil {
		return err
	}

	return ErrNotStoryOwner
}
