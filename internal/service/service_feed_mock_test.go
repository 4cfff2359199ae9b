package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/mock"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
)

type feedMocks struct {
	stories   *mock.MockStoryRepository
	users     *mock.MockUserRepository
	media     *mock.MockMediaStorage
	events    *mock.MockEventBroker
	validator *mock.MockValidator
}

func newMockedFeedSvc(t *testing.T) (FeedService, feedMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := feedMocks{
		stories:   mock.NewMockStoryRepository(ctrl),
		users:     mock.NewMockUserRepository(ctrl),
		media:     mock.NewMockMediaStorage(ctrl),
		events:    mock.NewMockEventBroker(ctrl),
		validator: mock.NewMockValidator(ctrl),
	}
	storages := &store.Storages{
		StoryRepository: m.stories,
		UserRepository:  m.users,
		MediaStorage:    m.media,
	}

	return NewFeedService(storages, m.events, m.validator, logger.Nop()), m
}

// ─────────────────────────────────────────────
// CreateStory
// ─────────────────────────────────────────────

func TestFeedService_CreateStory_ValidatorRejects(t *testing.T) {
	svc, m := newMockedFeedSvc(t)
	ctx := context.Background()

	errRule := errors.New("description is required")
	m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(errRule)

	_, err := svc.CreateStory(ctx, "u1", validDraft())
	assert.ErrorIs(t, err, ErrInvalidDraft)
	assert.ErrorIs(t, err, errRule)
}

func TestFeedService_CreateStory_MediaFailureStopsCreate(t *testing.T) {
	svc, m := newMockedFeedSvc(t)
	ctx := context.Background()

	errDisk := errors.New("disk full")
	m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil)
	m.users.EXPECT().FindUserByID(ctx, "u1").Return(models.User{ID: "u1", Name: "Ann"}, nil)
	m.media.EXPECT().SaveMedia(ctx, gomock.Any(), validDraft().Photo).Return(errDisk)
	// ни CreateStory, ни Publish вызываться не должны

	_, err := svc.CreateStory(ctx, "u1", validDraft())
	assert.ErrorIs(t, err, errDisk)
}

func TestFeedService_CreateStory_PublishesAfterInsert(t *testing.T) {
	svc, m := newMockedFeedSvc(t)
	ctx := context.Background()

	var mediaName string
	m.validator.EXPECT().Validate(ctx, gomock.Any()).Return(nil)
	m.users.EXPECT().FindUserByID(ctx, "u1").Return(models.User{ID: "u1", Name: "Ann"}, nil)
	m.media.EXPECT().SaveMedia(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, name string, _ []byte) error {
			mediaName = name
			return nil
		},
	)
	gomock.InOrder(
		m.stories.EXPECT().CreateStory(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s models.Story) (models.Story, error) {
				assert.Equal(t, MediaPathPrefix+mediaName, s.MediaRef)
				assert.Equal(t, "Ann", s.AuthorName)
				return s, nil
			},
		),
		m.events.EXPECT().Publish(gomock.Any()).Do(func(ev models.StoryEvent) {
			assert.Equal(t, models.StoryEventCreated, ev.Type)
		}),
	)

	created, err := svc.CreateStory(ctx, "u1", validDraft())
	require.NoError(t, err)
	assert.Equal(t, created.ID+".jpg", mediaName)
}

// ─────────────────────────────────────────────
// DeleteStory
// ─────────────────────────────────────────────

func TestFeedService_DeleteStory_RepositoryErrors(t *testing.T) {
	errConn := errors.New("connection reset")

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "not found", repoErr: store.ErrStoryNotFound, wantErr: ErrStoryNotFound},
		{name: "foreign story", repoErr: store.ErrNotStoryOwner, wantErr: ErrNotStoryOwner},
		{name: "unexpected", repoErr: errConn, wantErr: errConn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newMockedFeedSvc(t)
			ctx := context.Background()

			m.stories.EXPECT().DeleteStory(ctx, "s1", "u1").Return(tt.repoErr)

			err := svc.DeleteStory(ctx, "s1", "u1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFeedService_DeleteStory_Publishes(t *testing.T) {
	svc, m := newMockedFeedSvc(t)
	ctx := context.Background()

	m.stories.EXPECT().DeleteStory(ctx, "s1", "u1").Return(nil)
	m.events.EXPECT().Publish(gomock.Any()).Do(func(ev models.StoryEvent) {
		assert.Equal(t, models.StoryEventDeleted, ev.Type)
		assert.Equal(t, "s1", ev.StoryID)
	})

	require.NoError(t, svc.DeleteStory(ctx, "s1", "u1"))
}
