package store

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

// fakeClock hands out a controllable current time.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLocalRepo(t *testing.T) (*localStoryRepository, *fakeClock) {
	t.Helper()

	log := logger.Nop()
	db, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: filepath.Join(t.TempDir(), "stories.db")}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	repo := NewLocalStoryRepository(db, log).(*localStoryRepository)
	repo.now = clock.Now

	return repo, clock
}

func newMockLocalRepo(t *testing.T) (*localStoryRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewLocalStoryRepository(newDB(conn, driverSQLite, logger.Nop()), logger.Nop()).(*localStoryRepository), mock
}

func at(minutes int) time.Time {
	return time.Date(2026, 3, 1, 10, minutes, 0, 0, time.UTC)
}

func TestLocalStore_PutAndGet(t *testing.T) {
	repo, clock := newTestLocalRepo(t)
	ctx := context.Background()

	s := models.Story{
		ID:          "s1",
		AuthorName:  "Ann",
		Description: "Harbour at dawn",
		MediaRef:    "http://media/s1.jpg",
		CreatedAt:   at(5),
		Location:    &models.Location{Lat: -6.175, Lon: 106.827},
		OwnerID:     "user-1",
	}
	require.NoError(t, repo.Put(ctx, s))

	got, ok := repo.GetByID(ctx, "s1")
	require.True(t, ok)
	assert.Equal(t, s.Description, got.Description)
	assert.Equal(t, s.Location, got.Location)
	assert.Equal(t, s.OwnerID, got.OwnerID)
	assert.True(t, got.CreatedAt.Equal(at(5)))
	assert.True(t, got.UpdatedAt.Equal(clock.Now()))

	_, ok = repo.GetByID(ctx, "missing")
	assert.False(t, ok)
	_, ok = repo.GetByID(ctx, "")
	assert.False(t, ok)
}

func TestLocalStore_PutRejectsBlankID(t *testing.T) {
	repo, _ := newTestLocalRepo(t)

	assert.ErrorIs(t, repo.Put(context.Background(), models.Story{ID: "  "}), ErrInvalidItem)
	assert.Empty(t, repo.GetAll(context.Background()))
}

func TestLocalStore_PutCreatedAtRules(t *testing.T) {
	repo, clock := newTestLocalRepo(t)
	ctx := context.Background()

	// no createdAt anywhere: assigned now
	require.NoError(t, repo.Put(ctx, models.Story{ID: "s1", Description: "v1"}))
	first, _ := repo.GetByID(ctx, "s1")
	assert.True(t, first.CreatedAt.Equal(clock.Now()))

	// replace without createdAt: existing one kept, updatedAt moves
	clock.Advance(time.Minute)
	require.NoError(t, repo.Put(ctx, models.Story{ID: "s1", Description: "v2"}))
	second, _ := repo.GetByID(ctx, "s1")
	assert.Equal(t, "v2", second.Description)
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	// replace is full: location dropped
	require.NoError(t, repo.Put(ctx, models.Story{ID: "s2", Location: &models.Location{Lat: 1, Lon: 2}}))
	require.NoError(t, repo.Put(ctx, models.Story{ID: "s2"}))
	s2, _ := repo.GetByID(ctx, "s2")
	assert.Nil(t, s2.Location)
}

func TestLocalStore_GetAllOrder(t *testing.T) {
	repo, _ := newTestLocalRepo(t)
	ctx := context.Background()

	_, err := repo.PutMany(ctx, []models.Story{
		{ID: "b", CreatedAt: at(1)},
		{ID: "c", CreatedAt: at(3)},
		{ID: "a", CreatedAt: at(1)},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "a", "b"}, models.StoryIDs(repo.GetAll(ctx)))
	assert.Equal(t, []string{"c", "a"}, models.StoryIDs(repo.GetLatest(ctx, 2)))
	assert.Empty(t, repo.GetLatest(ctx, 0))
}

func TestLocalStore_EmptyReads(t *testing.T) {
	repo, _ := newTestLocalRepo(t)
	ctx := context.Background()

	all := repo.GetAll(ctx)
	require.NotNil(t, all)
	assert.Empty(t, all)
	assert.Empty(t, repo.Search(ctx, "x"))
}

func TestLocalStore_PutManySkipsInvalid(t *testing.T) {
	repo, _ := newTestLocalRepo(t)
	ctx := context.Background()

	res, err := repo.PutMany(ctx, []models.Story{{ID: "a"}, {ID: ""}, {ID: "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Written)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, repo.GetAll(ctx), 2)
}

func TestLocalStore_DeleteIdempotent(t *testing.T) {
	repo, _ := newTestLocalRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, models.Story{ID: "a"}))
	require.NoError(t, repo.Delete(ctx, "a"))
	require.NoError(t, repo.Delete(ctx, "a"))

	_, ok := repo.GetByID(ctx, "a")
	assert.False(t, ok)
}

func TestLocalStore_Search(t *testing.T) {
	repo, _ := newTestLocalRepo(t)
	ctx := context.Background()

	_, err := repo.PutMany(ctx, []models.Story{
		{ID: "1", AuthorName: "Zoë", Description: "Morning in ÜBERLINGEN", CreatedAt: at(1)},
		{ID: "2", AuthorName: "Bob", Description: "coffee", CreatedAt: at(2)},
		{ID: "3", AuthorName: "zoe", Description: "Lunch", CreatedAt: at(3)},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, models.StoryIDs(repo.Search(ctx, "überlingen")))
	assert.Equal(t, []string{"1"}, models.StoryIDs(repo.Search(ctx, "ZOË")))
	assert.Equal(t, []string{"3"}, models.StoryIDs(repo.Search(ctx, "zoe")))
	assert.Equal(t, []string{"3", "2", "1"}, models.StoryIDs(repo.Search(ctx, "   ")))
	assert.Equal(t, []string{"3", "2", "1"}, models.StoryIDs(repo.Search(ctx, "")))
	assert.Equal(t, []string{"1"}, models.StoryIDs(repo.Search(ctx, " in ")))
	assert.Empty(t, repo.Search(ctx, " coffee"))
	assert.Empty(t, repo.Search(ctx, "tea"))
}

func TestLocalStore_GetByDateRange(t *testing.T) {
	repo, _ := newTestLocalRepo(t)
	ctx := context.Background()

	_, err := repo.PutMany(ctx, []models.Story{
		{ID: "early", CreatedAt: at(0)},
		{ID: "mid", CreatedAt: at(10)},
		{ID: "edge", CreatedAt: at(20)},
		{ID: "late", CreatedAt: at(30)},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"edge", "mid"}, models.StoryIDs(repo.GetByDateRange(ctx, at(10), at(20))))
	assert.Empty(t, repo.GetByDateRange(ctx, at(20), at(10)))
}

func TestLocalStore_ReconcileWith(t *testing.T) {
	repo, clock := newTestLocalRepo(t)
	ctx := context.Background()

	res, err := repo.ReconcileWith(ctx, []models.Story{
		{ID: "a", Description: "first", CreatedAt: at(1)},
		{ID: "b", Description: "second"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, res.Added)

	b, _ := repo.GetByID(ctx, "b")
	assert.True(t, b.CreatedAt.Equal(clock.Now()), "missing createdAt is assigned at first write")

	clock.Advance(time.Hour)
	res, err = repo.ReconcileWith(ctx, []models.Story{
		{ID: "a", Description: "first (edited)", CreatedAt: at(50)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Updated)
	assert.Equal(t, []string{"b"}, res.Removed)

	a, _ := repo.GetByID(ctx, "a")
	assert.Equal(t, "first (edited)", a.Description)
	assert.True(t, a.CreatedAt.Equal(at(1)), "reconciliation never overwrites a known createdAt")
	_, ok := repo.GetByID(ctx, "b")
	assert.False(t, ok)
}

func TestLocalStore_ReconcileIdempotent(t *testing.T) {
	repo, clock := newTestLocalRepo(t)
	ctx := context.Background()

	snapshot := []models.Story{
		{ID: "a", Description: "one", CreatedAt: at(1)},
		{ID: "b", Description: "two"},
	}

	_, err := repo.ReconcileWith(ctx, snapshot)
	require.NoError(t, err)
	first := repo.GetAll(ctx)

	clock.Advance(time.Hour)
	res, err := repo.ReconcileWith(ctx, snapshot)
	require.NoError(t, err)

	assert.Equal(t, first, repo.GetAll(ctx))
	assert.Equal(t, 2, res.Unchanged)
	assert.Empty(t, res.Added)
	assert.Empty(t, res.Updated)
	assert.Empty(t, res.Removed)
}

func TestLocalStore_ReconcileRetainsPending(t *testing.T) {
	repo, _ := newTestLocalRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, models.Story{ID: "mine"}))
	require.NoError(t, repo.Put(ctx, models.Story{ID: "gone"}))

	res, err := repo.ReconcileWith(ctx, []models.Story{{ID: "x"}}, "mine")
	require.NoError(t, err)
	assert.Equal(t, []string{"gone"}, res.Removed)
	assert.ElementsMatch(t, []string{"mine", "x"}, models.StoryIDs(repo.GetAll(ctx)))
}

func TestLocalStore_ReconcileSkipsInvalid(t *testing.T) {
	repo, _ := newTestLocalRepo(t)

	res, err := repo.ReconcileWith(context.Background(), []models.Story{{ID: ""}, {ID: "a"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"a"}, res.Added)
}

func TestLocalStore_GetAllQueryError(t *testing.T) {
	repo, mock := newMockLocalRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, author_name")).WillReturnError(errors.New("disk I/O error"))

	all := repo.GetAll(context.Background())
	require.NotNil(t, all)
	assert.Empty(t, all)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalStore_PutExecError(t *testing.T) {
	repo, mock := newMockLocalRepo(t)

	mock.ExpectExec("INSERT INTO stories").WillReturnError(errors.New("database is locked"))

	err := repo.Put(context.Background(), models.Story{ID: "a"})
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestLocalStore_PutManyRollsBack(t *testing.T) {
	repo, mock := newMockLocalRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO stories").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO stories").WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	_, err := repo.PutMany(context.Background(), []models.Story{{ID: "a"}, {ID: "b"}})
	assert.ErrorIs(t, err, ErrStore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalStore_ReconcileBeginError(t *testing.T) {
	repo, mock := newMockLocalRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("busy"))

	_, err := repo.ReconcileWith(context.Background(), []models.Story{{ID: "a"}})
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestLocalStore_ReconcileCommitError(t *testing.T) {
	repo, mock := newMockLocalRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, fingerprint FROM stories").
		WillReturnRows(sqlmock.NewRows([]string{"id", "fingerprint"}).AddRow("old", "f"))
	mock.ExpectExec("DELETE FROM stories").WithArgs("old").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO stories").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	_, err := repo.ReconcileWith(context.Background(), []models.Story{{ID: "a"}})
	assert.ErrorIs(t, err, ErrCommitingTransaction)
	require.NoError(t, mock.ExpectationsWereMet())
}
