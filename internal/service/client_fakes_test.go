package service

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/validators"
	"github.com/MKhiriev/go-story-sync/models"
)

// spyRemote отдаёт заданный снапшот и считает вызовы FetchAll. Если gate
// задан, FetchAll ждёт его закрытия.
type spyRemote struct {
	mu       sync.Mutex
	snapshot []models.Story
	err      error
	userID   string

	gate    chan struct{}
	started chan struct{}

	calls     atomic.Int64
	active    atomic.Int64
	maxActive atomic.Int64
}

func (r *spyRemote) setSnapshot(stories ...models.Story) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = stories
	r.err = nil
}

func (r *spyRemote) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *spyRemote) FetchAll(ctx context.Context) ([]models.Story, error) {
	r.calls.Add(1)
	n := r.active.Add(1)
	defer r.active.Add(-1)
	for {
		prev := r.maxActive.Load()
		if n <= prev || r.maxActive.CompareAndSwap(prev, n) {
			break
		}
	}

	if r.started != nil {
		select {
		case r.started <- struct{}{}:
		default:
		}
	}
	if r.gate != nil {
		select {
		case <-r.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return append([]models.Story(nil), r.snapshot...), nil
}

func (r *spyRemote) FetchByID(context.Context, string) (models.Story, error) {
	return models.Story{}, nil
}

func (r *spyRemote) Create(context.Context, models.StoryDraft) (models.Story, error) {
	return models.Story{}, nil
}

func (r *spyRemote) Delete(context.Context, string) error { return nil }
func (r *spyRemote) Ping(context.Context) error          { return nil }

func (r *spyRemote) Register(context.Context, models.User) error { return nil }

func (r *spyRemote) Login(context.Context, string, string) (models.LoginResult, error) {
	return models.LoginResult{}, nil
}

func (r *spyRemote) SetToken(string) {}
func (r *spyRemote) Token() string   { return "" }
func (r *spyRemote) UserID() string  { return r.userID }

// recordingDispatcher запоминает все уведомления.
type recordingDispatcher struct {
	mu      sync.Mutex
	stories []models.Story
	err     error
}

func (d *recordingDispatcher) Notify(_ context.Context, story models.Story) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stories = append(d.stories, story)
	return d.err
}

func (d *recordingDispatcher) notified() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return models.StoryIDs(d.stories)
}

type fakeVisibility struct {
	hidden atomic.Bool
}

func (v *fakeVisibility) IsVisible() bool { return !v.hidden.Load() }

// updateRecorder collects story list updates.
type updateRecorder struct {
	mu      sync.Mutex
	updates []models.StoryListUpdate
}

func (r *updateRecorder) record(u models.StoryListUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func (r *updateRecorder) last(t *testing.T) models.StoryListUpdate {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.updates, "no story list update was published")
	return r.updates[len(r.updates)-1]
}

type controllerFixture struct {
	controller *syncController
	local      store.LocalStore
	remote     *spyRemote
	dispatcher *recordingDispatcher
	visibility *fakeVisibility
	updates    *updateRecorder
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()

	log := logger.Nop()
	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "client.db")},
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	f := &controllerFixture{
		local:      storages.LocalStore,
		remote:     &spyRemote{},
		dispatcher: &recordingDispatcher{},
		visibility: &fakeVisibility{},
		updates:    &updateRecorder{},
	}

	validator := validators.NewStoryValidator()
	engine := NewReconciliationEngine(f.local, validator, log)
	detector := NewNoveltyDetector(30 * time.Second)
	f.controller = NewSyncController(f.local, f.remote, engine, detector, f.dispatcher, f.visibility,
		config.ClientWorkers{FetchTimeout: 2 * time.Second, NoveltyWindow: 30 * time.Second}, log).(*syncController)
	f.controller.OnStoryListChanged(f.updates.record)

	return f
}

func story(id string, age time.Duration) models.Story {
	return models.Story{
		ID:          id,
		AuthorName:  "author " + id,
		Description: "story " + id,
		MediaRef:    "/v1/media/" + id + ".jpg",
		CreatedAt:   time.Now().Add(-age).UTC().Truncate(time.Millisecond),
	}
}

// spyController records what the story service and sync job ask for.
type spyController struct {
	mu       sync.Mutex
	triggers []models.SyncTrigger
	created  []models.Story
	deleted  []string
	expected []models.StoryDraft
	released int
	err      error
	outcome  models.SyncOutcome
}

func (c *spyController) Start(context.Context) {}

func (c *spyController) Trigger(_ context.Context, trigger models.SyncTrigger) models.SyncOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.triggers = append(c.triggers, trigger)
	return c.outcome
}

func (c *spyController) State() models.SyncPhase { return models.PhaseIdle }
func (c *spyController) IsOffline() bool         { return false }
func (c *spyController) IsStale() bool           { return false }

func (c *spyController) OnStoryListChanged(func(models.StoryListUpdate)) func() { return func() {} }

func (c *spyController) RecordLocalCreate(_ context.Context, s models.Story) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created = append(c.created, s)
	return c.err
}

func (c *spyController) ExpectLocalCreate(draft models.StoryDraft) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expected = append(c.expected, draft)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.released++
	}
}

func (c *spyController) RecordLocalDelete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, id)
	return c.err
}

func (c *spyController) Wait() {}

func (c *spyController) triggerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.triggers)
}
