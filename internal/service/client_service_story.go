package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/validators"
	"github.com/MKhiriev/go-story-sync/models"
)

type storyService struct {
	local      store.LocalStore
	remote     adapter.RemoteSource
	controller SyncController
	validator  validators.Validator
	logger     *logger.Logger
}

func NewStoryService(
	local store.LocalStore,
	remote adapter.RemoteSource,
	controller SyncController,
	validator validators.Validator,
	logger *logger.Logger,
) StoryService {
	return &storyService{
		local:      local,
		remote:     remote,
		controller: controller,
		validator:  validator,
		logger:     logger,
	}
}

func (s *storyService) GetAllStories(ctx context.Context) []models.Story {
	return s.local.GetAll(ctx)
}

// GetStory serves the local replica first and falls back to the server,
// caching what it fetched.
func (s *storyService) GetStory(ctx context.Context, id string) (models.Story, error) {
	if strings.TrimSpace(id) == "" {
		return models.Story{}, ErrStoryNotFound
	}
	if story, ok := s.local.GetByID(ctx, id); ok {
		return story, nil
	}

	story, err := s.remote.FetchByID(ctx, id)
	if err != nil {
		mapped := mapAdapterError(err)
		if errors.Is(mapped, ErrStoryNotFound) {
			return models.Story{}, ErrStoryNotFound
		}
		return models.Story{}, fmt.Errorf("fetch story %s: %w", id, mapped)
	}

	if err = s.local.Put(ctx, story); err != nil {
		s.logger.Err(err).
			Str("func", "storyService.GetStory").
			Str("story_id", id).
			Msg("failed to cache fetched story")
	}

	return story, nil
}

func (s *storyService) SearchStories(ctx context.Context, query string) []models.Story {
	return s.local.Search(ctx, query)
}

func (s *storyService) GetLatestStories(ctx context.Context, limit int) []models.Story {
	return s.local.GetLatest(ctx, limit)
}

func (s *storyService) GetStoriesByDateRange(ctx context.Context, from, to time.Time) []models.Story {
	return s.local.GetByDateRange(ctx, from, to)
}

// CreateStory uploads the draft, records the created story locally so its
// creator is never notified about it and triggers a pass. The draft is
// announced to the controller before the upload starts.
func (s *storyService) CreateStory(ctx context.Context, draft models.StoryDraft) (models.Story, error) {
	if err := s.validator.Validate(ctx, draft); err != nil {
		return models.Story{}, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	done := s.controller.ExpectLocalCreate(draft)
	story, err := s.remote.Create(ctx, draft)
	if err != nil {
		done()
		return models.Story{}, mapAdapterError(err)
	}
	if story.OwnerID == "" {
		story.OwnerID = s.remote.UserID()
	}

	if strings.TrimSpace(story.ID) == "" {
		// the server did not echo the story; the draft marker keeps the
		// next pass from announcing it
		s.controller.Trigger(ctx, models.TriggerLocalWriteCompleted)
		return story, nil
	}

	if err = s.controller.RecordLocalCreate(ctx, story); err != nil {
		s.logger.Err(err).
			Str("func", "storyService.CreateStory").
			Str("story_id", story.ID).
			Msg("story created remotely but not stored locally")
	} else {
		done()
	}
	s.controller.Trigger(ctx, models.TriggerLocalWriteCompleted)

	return story, nil
}

// DeleteStory deletes on the server first, then locally. A story the server
// no longer has is removed locally as well.
func (s *storyService) DeleteStory(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrStoryNotFound
	}

	if err := s.remote.Delete(ctx, id); err != nil {
		mapped := mapAdapterError(err)
		if !errors.Is(mapped, ErrStoryNotFound) {
			return mapped
		}
	}

	if err := s.controller.RecordLocalDelete(ctx, id); err != nil {
		return fmt.Errorf("delete story %s locally: %w", id, err)
	}
	return nil
}

func (s *storyService) Refresh(ctx context.Context) models.SyncOutcome {
	return s.controller.Trigger(ctx, models.TriggerManualRefresh)
}

func (s *storyService) OnStoryListChanged(fn func(models.StoryListUpdate)) func() {
	return s.controller.OnStoryListChanged(fn)
}

func (s *storyService) IsOffline() bool {
	return s.controller.IsOffline()
}

func (s *storyService) IsStale() bool {
	return s.controller.IsStale()
}
