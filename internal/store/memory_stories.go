package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

// memoryStoryRepository keeps stories in process memory. It backs the
// development server when no database DSN is configured.
type memoryStoryRepository struct {
	mu      sync.RWMutex
	stories map[string]models.Story
	now     func() time.Time
}

func NewMemoryStoryRepository() StoryRepository {
	return &memoryStoryRepository{
		stories: make(map[string]models.Story),
		now:     time.Now,
	}
}

func (m *memoryStoryRepository) ListStories(ctx context.Context) ([]models.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stories := make([]models.Story, 0, len(m.stories))
	for _, s := range m.stories {
		stories = append(stories, s)
	}
	slices.SortFunc(stories, models.CompareNewestFirst)

	return stories, nil
}

func (m *memoryStoryRepository) GetStory(ctx context.Context, id string) (models.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.stories[id]
	if !ok {
		return models.Story{}, ErrStoryNotFound
	}

	return s, nil
}

func (m *memoryStoryRepository) CreateStory(ctx context.Context, story models.Story) (models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	story.CreatedAt = m.now().UTC()
	story.UpdatedAt = story.CreatedAt
	m.stories[story.ID] = story

	return story, nil
}

func (m *memoryStoryRepository) DeleteStory(ctx context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.stories[id]
	if !ok {
		return ErrStoryNotFound
	}
	if s.OwnerID != ownerID {
		return ErrNotStoryOwner
	}
	delete(m.stories, id)

	return nil
}
