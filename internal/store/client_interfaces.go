package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalStore is the persistent local replica of the story collection.
//
// Reads never fail: store errors are logged and degrade to an empty result
// (or "not found"). All list reads are ordered by CreatedAt descending, ties
// broken by ID ascending.
type LocalStore interface {
	// GetAll returns every stored story.
	GetAll(ctx context.Context) []models.Story
	// GetByID returns the story with the given id, or false.
	GetByID(ctx context.Context, id string) (models.Story, bool)
	// Put inserts or fully replaces a story. CreatedAt is kept when the
	// incoming value is zero and assigned when neither exists.
	Put(ctx context.Context, story models.Story) error
	// PutMany writes a batch atomically. Stories without an id are skipped.
	PutMany(ctx context.Context, stories []models.Story) (models.BatchResult, error)
	// Delete removes a story. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// ReconcileWith makes the replica mirror a full remote snapshot in one
	// transaction. Ids listed in retain survive even when absent remotely.
	ReconcileWith(ctx context.Context, remote []models.Story, retain ...string) (models.ReconcileResult, error)
	// Search returns stories whose description or author name contains
	// query, ignoring case. A blank query returns GetAll.
	Search(ctx context.Context, query string) []models.Story
	// GetLatest returns the limit newest stories.
	GetLatest(ctx context.Context, limit int) []models.Story
	// GetByDateRange returns stories created within [from, to].
	GetByDateRange(ctx context.Context, from, to time.Time) []models.Story
}
