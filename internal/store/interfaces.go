package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_store_mock.go -package=mock

// StoryRepository persists the server-side story collection.
type StoryRepository interface {
	// ListStories returns every story, newest first.
	ListStories(ctx context.Context) ([]models.Story, error)
	// GetStory returns one story or [ErrStoryNotFound].
	GetStory(ctx context.Context, id string) (models.Story, error)
	// CreateStory inserts a story and returns it with server-assigned fields.
	CreateStory(ctx context.Context, story models.Story) (models.Story, error)
	// DeleteStory removes a story owned by ownerID. It returns
	// [ErrStoryNotFound] or [ErrNotStoryOwner].
	DeleteStory(ctx context.Context, id, ownerID string) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
}

// MediaStorage keeps uploaded story photos.
type MediaStorage interface {
	SaveMedia(ctx context.Context, name string, data []byte) error
	OpenMedia(ctx context.Context, name string) (io.ReadCloser, error)
}
