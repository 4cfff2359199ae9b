package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

// ReconciliationEngine makes the local replica mirror a remote snapshot.
type ReconciliationEngine interface {
	// Reconcile deletes local stories absent from remote (except retain),
	// upserts added and changed ones and leaves unchanged ones untouched.
	// A failure leaves the replica as it was.
	Reconcile(ctx context.Context, remote []models.Story, retain ...string) (models.ReconcileResult, error)
}

// NoveltyDetector picks the story worth a "new story" notification.
type NoveltyDetector interface {
	// Detect returns the most recent story of snapshot that is absent from
	// previouslyKnown, was created within the novelty window and is not
	// lastNotifiedID. At most one story is returned.
	Detect(previouslyKnown map[string]struct{}, snapshot []models.Story, lastNotifiedID string) (models.Story, bool)
}

// SyncController decides when reconciliation passes run and publishes their
// results. At most one pass runs at a time.
type SyncController interface {
	// Start seeds the known-id set from the local replica and publishes the
	// cached list.
	Start(ctx context.Context)

	// Trigger handles one sync trigger and reports what it caused.
	Trigger(ctx context.Context, trigger models.SyncTrigger) models.SyncOutcome

	State() models.SyncPhase
	IsOffline() bool
	IsStale() bool

	// OnStoryListChanged registers fn to receive the ordered story list after
	// every pass and local write. The returned func unregisters it.
	OnStoryListChanged(fn func(models.StoryListUpdate)) (cancel func())

	// RecordLocalCreate stores a story the user just created remotely and
	// marks it known so it never notifies its own creator.
	RecordLocalCreate(ctx context.Context, story models.Story) error

	// ExpectLocalCreate marks a draft about to be uploaded. Until the
	// returned func is called, the first unknown snapshot story with the
	// draft's description counts as known. Markers expire with pending
	// local creates.
	ExpectLocalCreate(draft models.StoryDraft) (done func())

	// RecordLocalDelete removes a story the user just deleted remotely.
	RecordLocalDelete(ctx context.Context, id string) error

	// Wait blocks until detached notification tasks have finished.
	Wait()
}

// StoryService is what the view layer uses. Reads come from the local
// replica; writes go to the server first.
type StoryService interface {
	GetAllStories(ctx context.Context) []models.Story
	GetStory(ctx context.Context, id string) (models.Story, error)
	SearchStories(ctx context.Context, query string) []models.Story
	GetLatestStories(ctx context.Context, limit int) []models.Story
	GetStoriesByDateRange(ctx context.Context, from, to time.Time) []models.Story

	CreateStory(ctx context.Context, draft models.StoryDraft) (models.Story, error)
	DeleteStory(ctx context.Context, id string) error

	Refresh(ctx context.Context) models.SyncOutcome
	OnStoryListChanged(fn func(models.StoryListUpdate)) (cancel func())
	IsOffline() bool
	IsStale() bool
}

// ClientAuthService establishes the client's API session.
type ClientAuthService interface {
	// EnsureSession uses token when set, otherwise logs in with email and
	// password.
	EnsureSession(ctx context.Context, token, email, password string) error
	Register(ctx context.Context, user models.User) error
	Login(ctx context.Context, email, password string) (models.LoginResult, error)
	// CurrentUserID is the id of the logged-in user, or "".
	CurrentUserID() string
}

// SyncJob emits TimerTick triggers on an interval.
type SyncJob interface {
	Start(ctx context.Context)
	Stop()
}
