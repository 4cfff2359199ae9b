package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// FeedService is the server side of the story API.
type FeedService interface {
	ListStories(ctx context.Context) ([]models.Story, error)
	GetStory(ctx context.Context, id string) (models.Story, error)
	// CreateStory stores the draft's photo and creates a story authored by
	// ownerID.
	CreateStory(ctx context.Context, ownerID string, draft models.StoryDraft) (models.Story, error)
	// DeleteStory deletes a story of ownerID.
	DeleteStory(ctx context.Context, id, ownerID string) error
	OpenMedia(ctx context.Context, name string) (io.ReadCloser, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// EventBroker fans story events out to stream subscribers.
type EventBroker interface {
	// Subscribe returns a channel of events and a func that unsubscribes and
	// closes the channel.
	Subscribe() (<-chan models.StoryEvent, func())
	Publish(event models.StoryEvent)
}
