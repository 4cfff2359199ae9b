// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/internal/validators"
	"github.com/MKhiriev/go-story-sync/models"
)

// MediaPathPrefix is the URL path under which stored photos are served.
const MediaPathPrefix = "/v1/media/"

var allowedPhotoExt = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

type feedService struct {
	stories   store.StoryRepository
	users     store.UserRepository
	media     store.MediaStorage
	events    EventBroker
	validator validators.Validator
	ids       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewFeedService(storages *store.Storages, events EventBroker, validator validators.Validator, logger *logger.Logger) FeedService {
	return &feedService{
		stories:   storages.StoryRepository,
		users:     storages.UserRepository,
		media:     storages.MediaStorage,
		events:    events,
		validator: validator,
		ids:       utils.NewUUIDGenerator("story-"),
		logger:    logger,
	}
}

func (s *feedService) ListStories(ctx context.Context) ([]models.Story, error) {
	stories, err := s.stories.ListStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return stories, nil
}

func (s *feedService) GetStory(ctx context.Context, id string) (models.Story, error) {
	story, err := s.stories.GetStory(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrStoryNotFound) {
			return models.Story{}, ErrStoryNotFound
		}
		return models.Story{}, fmt.Errorf("get story %s: %w", id, err)
	}
	return story, nil
}

func (s *feedService) CreateStory(ctx context.Context, ownerID string, draft models.StoryDraft) (models.Story, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, draft); err != nil {
		return models.Story{}, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	author, err := s.users.FindUserByID(ctx, ownerID)
	if err != nil {
		log.Err(err).Str("func", "feedService.CreateStory").Str("owner_id", ownerID).Msg("author lookup failed")
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Story{}, ErrTokenIsExpiredOrInvalid
		}
		return models.Story{}, fmt.Errorf("find author: %w", err)
	}

	id := s.ids.Generate()
	mediaName := id + photoExt(draft.PhotoName)
	if err = s.media.SaveMedia(ctx, mediaName, draft.Photo); err != nil {
		return models.Story{}, fmt.Errorf("save photo: %w", err)
	}

	story := models.Story{
		ID:          id,
		AuthorName:  author.Name,
		Description: strings.TrimSpace(draft.Description),
		MediaRef:    MediaPathPrefix + mediaName,
		OwnerID:     ownerID,
	}
	if draft.Lat != nil && draft.Lon != nil {
		story.Location = &models.Location{Lat: *draft.Lat, Lon: *draft.Lon}
	}

	created, err := s.stories.CreateStory(ctx, story)
	if err != nil {
		return models.Story{}, fmt.Errorf("create story: %w", err)
	}

	s.events.Publish(models.StoryEvent{Type: models.StoryEventCreated, StoryID: created.ID, At: time.Now().UTC()})
	log.Info().Str("story_id", created.ID).Str("owner_id", ownerID).Msg("story created")

	return created, nil
}

func (s *feedService) DeleteStory(ctx context.Context, id, ownerID string) error {
	err := s.stories.DeleteStory(ctx, id, ownerID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrStoryNotFound):
		return ErrStoryNotFound
	case errors.Is(err, store.ErrNotStoryOwner):
		return ErrNotStoryOwner
	default:
		return fmt.Errorf("delete story %s: %w", id, err)
	}

	s.events.Publish(models.StoryEvent{Type: models.StoryEventDeleted, StoryID: id, At: time.Now().UTC()})
	return nil
}

func (s *feedService) OpenMedia(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.media.OpenMedia(ctx, name)
}

func photoExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedPhotoExt[ext]; ok {
		return ext
	}
	return ".bin"
}
