package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

// memoryUserRepository keeps accounts in process memory, keyed by
// lower-cased email.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]models.User)}
}

func (m *memoryUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	key := strings.ToLower(user.Email)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[key]; exists {
		return models.User{}, ErrEmailAlreadyExists
	}

	user.Password = ""
	user.CreatedAt = time.Now().UTC()
	m.users[key] = user

	return user, nil
}

func (m *memoryUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return user, nil
}

func (m *memoryUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}

	return models.User{}, ErrNoUserWasFound
}
