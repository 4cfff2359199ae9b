package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

// localStoryRepository is the SQLite-backed implementation of [LocalStore].
//
// Timestamps are stored as UTC unix nanoseconds. Every write also stores the
// story's content fingerprint so reconciliation can skip unchanged rows
// without loading them.
type localStoryRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewLocalStoryRepository constructs a [LocalStore] on top of a migrated
// SQLite handle.
func NewLocalStoryRepository(db *DB, logger *logger.Logger) LocalStore {
	return &localStoryRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (l *localStoryRepository) GetAll(ctx context.Context) []models.Story {
	return l.list(ctx, "localStoryRepository.GetAll", selectLocalStories(l.builder))
}

func (l *localStoryRepository) GetLatest(ctx context.Context, limit int) []models.Story {
	if limit <= 0 {
		return []models.Story{}
	}

	return l.list(ctx, "localStoryRepository.GetLatest", selectLocalStories(l.builder).Limit(uint64(limit)))
}

func (l *localStoryRepository) GetByDateRange(ctx context.Context, from, to time.Time) []models.Story {
	if to.Before(from) {
		return []models.Story{}
	}

	query := selectLocalStories(l.builder).Where(sq.And{
		sq.GtOrEq{"created_at": from.UTC().UnixNano()},
		sq.LtOrEq{"created_at": to.UTC().UnixNano()},
	})

	return l.list(ctx, "localStoryRepository.GetByDateRange", query)
}

// Search filters in Go: SQLite's LOWER() only folds ASCII.
func (l *localStoryRepository) Search(ctx context.Context, query string) []models.Story {
	all := l.GetAll(ctx)

	if strings.TrimSpace(query) == "" {
		return all
	}
	needle := strings.ToLower(query)

	found := make([]models.Story, 0, len(all))
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.Description), needle) ||
			strings.Contains(strings.ToLower(s.AuthorName), needle) {
			found = append(found, s)
		}
	}

	return found
}

func (l *localStoryRepository) GetByID(ctx context.Context, id string) (models.Story, bool) {
	if strings.TrimSpace(id) == "" {
		return models.Story{}, false
	}

	query, args, err := selectLocalStories(l.builder).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		l.logger.Err(err).Str("func", "localStoryRepository.GetByID").Msg("failed to build query")
		return models.Story{}, false
	}

	s, err := scanLocalStory(l.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			l.logger.Err(err).
				Str("func", "localStoryRepository.GetByID").
				Str("story_id", id).
				Msg("failed to read story")
		}
		return models.Story{}, false
	}

	return s, true
}

func (l *localStoryRepository) Put(ctx context.Context, story models.Story) error {
	if strings.TrimSpace(story.ID) == "" {
		return ErrInvalidItem
	}

	if err := l.put(ctx, l.DB, story, true); err != nil {
		l.logger.Err(err).
			Str("func", "localStoryRepository.Put").
			Str("story_id", story.ID).
			Msg("failed to upsert story")
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	return nil
}

func (l *localStoryRepository) PutMany(ctx context.Context, stories []models.Story) (models.BatchResult, error) {
	result := models.BatchResult{Written: make([]string, 0, len(stories))}

	err := l.inTx(ctx, "localStoryRepository.PutMany", func(tx *sql.Tx) error {
		for i, s := range stories {
			if strings.TrimSpace(s.ID) == "" {
				l.logger.Warn().Err(ErrInvalidItem).
					Str("func", "localStoryRepository.PutMany").
					Int("index", i).
					Msg("skipping story without id")
				result.Skipped++
				continue
			}

			if err := l.put(ctx, tx, s, true); err != nil {
				return fmt.Errorf("story %s: %w", s.ID, err)
			}
			result.Written = append(result.Written, s.ID)
		}
		return nil
	})
	if err != nil {
		return models.BatchResult{}, err
	}

	return result, nil
}

func (l *localStoryRepository) Delete(ctx context.Context, id string) error {
	query, args, err := l.builder.Delete(localStoriesTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		l.logger.Err(err).
			Str("func", "localStoryRepository.Delete").
			Str("story_id", id).
			Msg("failed to delete story")
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrExecutingStatement, err)
	}

	return nil
}

// ReconcileWith runs the plan built by [PlanReconcile] in one transaction:
// removals first, then upserts of added and changed stories. A local
// CreatedAt is never replaced; a story new to the replica keeps the remote
// CreatedAt, or gets the current time when the snapshot has none.
func (l *localStoryRepository) ReconcileWith(ctx context.Context, remote []models.Story, retain ...string) (models.ReconcileResult, error) {
	var result models.ReconcileResult

	err := l.inTx(ctx, "localStoryRepository.ReconcileWith", func(tx *sql.Tx) error {
		states, err := l.states(ctx, tx)
		if err != nil {
			return err
		}

		plan, err := PlanReconcile(ctx, states, remote, retain)
		if err != nil {
			return err
		}

		if len(plan.Removed) > 0 {
			query, args, err := l.builder.Delete(localStoriesTable).Where(sq.Eq{"id": plan.Removed}).ToSql()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		for _, s := range plan.Added {
			if err := l.put(ctx, tx, s, false); err != nil {
				return fmt.Errorf("add story %s: %w", s.ID, err)
			}
		}
		for _, s := range plan.Changed {
			if err := l.put(ctx, tx, s, false); err != nil {
				return fmt.Errorf("update story %s: %w", s.ID, err)
			}
		}

		result = models.ReconcileResult{
			Added:     models.StoryIDs(plan.Added),
			Updated:   models.StoryIDs(plan.Changed),
			Removed:   plan.Removed,
			Unchanged: len(plan.Unchanged),
			Skipped:   plan.Skipped,
		}
		return nil
	})
	if err != nil {
		return models.ReconcileResult{}, err
	}

	if result.Skipped > 0 {
		l.logger.Warn().Err(ErrInvalidItem).
			Str("func", "localStoryRepository.ReconcileWith").
			Int("skipped", result.Skipped).
			Msg("snapshot contained stories without id")
	}

	return result, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// put upserts one story. overrideCreated lets an explicit CreatedAt replace
// the stored one; reconciliation passes false.
func (l *localStoryRepository) put(ctx context.Context, db execer, s models.Story, overrideCreated bool) error {
	now := l.now().UTC()

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
		overrideCreated = false
	}

	query, args, err := upsertLocalStory(l.builder, s, createdAt, now, overrideCreated).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (l *localStoryRepository) states(ctx context.Context, tx *sql.Tx) ([]models.StoryState, error) {
	query, args, err := l.builder.Select("id", "fingerprint").From(localStoriesTable).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	states := make([]models.StoryState, 0, 64)
	for rows.Next() {
		var st models.StoryState
		if err := rows.Scan(&st.ID, &st.Fingerprint); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		states = append(states, st)
	}

	return states, rows.Err()
}

// list runs a story query. Failures are logged and yield an empty result.
func (l *localStoryRepository) list(ctx context.Context, fn string, b sq.SelectBuilder) []models.Story {
	stories := make([]models.Story, 0)

	query, args, err := b.ToSql()
	if err != nil {
		l.logger.Err(err).Str("func", fn).Msg("failed to build query")
		return stories
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		l.logger.Err(err).Str("func", fn).Msg("failed to query stories")
		return stories
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanLocalStory(rows)
		if err != nil {
			l.logger.Err(err).Str("func", fn).Msg("failed to scan story row")
			return make([]models.Story, 0)
		}
		stories = append(stories, s)
	}

	if err := rows.Err(); err != nil {
		l.logger.Err(err).Str("func", fn).Msg("error occurred during rows iteration")
		return make([]models.Story, 0)
	}

	return stories
}

// inTx runs fn in a transaction and wraps every failure in [ErrStore].
func (l *localStoryRepository) inTx(ctx context.Context, fn string, body func(tx *sql.Tx) error) error {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		l.logger.Err(err).Str("func", fn).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrBeginningTransaction, err)
	}

	if err = body(tx); err != nil {
		_ = tx.Rollback()
		l.logger.Err(err).Str("func", fn).Msg("transaction rolled back")
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	if err = tx.Commit(); err != nil {
		l.logger.Err(err).Str("func", fn).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w: %w", ErrStore, ErrCommitingTransaction, err)
	}

	return nil
}
