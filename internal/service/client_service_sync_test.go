// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/models"
)

// ── scenarios ───────────────────────────────────────────────────────────────

func TestSyncController_EmptyReplicaReceivesFirstStory(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	f.controller.Start(ctx)

	a := story("a", 2*time.Second)
	f.remote.setSnapshot(a)

	outcome := f.controller.Trigger(ctx, models.TriggerNetworkOnline)
	f.controller.Wait()

	require.Equal(t, models.OutcomeSynced, outcome)
	assert.Equal(t, []string{"a"}, models.StoryIDs(f.local.GetAll(ctx)))
	assert.Equal(t, []string{"a"}, f.dispatcher.notified())

	last := f.updates.last(t)
	assert.Equal(t, []string{"a"}, models.StoryIDs(last.Stories))
	assert.False(t, last.Offline)
	assert.False(t, last.Stale)
	assert.Equal(t, models.TriggerNetworkOnline, last.Cause)
	assert.Equal(t, models.PhaseIdle, f.controller.State())
}

func TestSyncController_SnapshotIsAuthoritative(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	a, b := story("a", time.Hour), story("b", 2*time.Hour)
	_, err := f.local.PutMany(ctx, []models.Story{a, b})
	require.NoError(t, err)
	f.controller.Start(ctx)

	f.remote.setSnapshot(a)
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerVisibilityRegained))
	f.controller.Wait()

	assert.Equal(t, []string{"a"}, models.StoryIDs(f.local.GetAll(ctx)))
	assert.Empty(t, f.dispatcher.notified(), "known stories never notify")
}

func TestSyncController_TwoTriggersTenMillisecondsApart(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	f.remote.gate = make(chan struct{})
	f.remote.started = make(chan struct{}, 1)
	f.remote.setSnapshot(story("a", time.Minute))

	first := make(chan models.SyncOutcome, 1)
	go func() { first <- f.controller.Trigger(ctx, models.TriggerNetworkOnline) }()

	<-f.remote.started
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, models.OutcomeDropped, f.controller.Trigger(ctx, models.TriggerVisibilityRegained))
	assert.Equal(t, models.PhaseSyncing, f.controller.State())

	close(f.remote.gate)
	assert.Equal(t, models.OutcomeSynced, <-first)
	assert.Equal(t, int64(1), f.remote.calls.Load())
}

// ── concurrency ─────────────────────────────────────────────────────────────

func TestSyncController_AtMostOnePassInFlight(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	f.remote.gate = make(chan struct{})
	f.remote.setSnapshot(story("a", time.Minute), story("b", time.Minute))

	var wg sync.WaitGroup
	outcomes := make(chan models.SyncOutcome, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes <- f.controller.Trigger(ctx, models.TriggerManualRefresh)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(f.remote.gate)
	wg.Wait()
	close(outcomes)

	synced := 0
	for o := range outcomes {
		if o == models.OutcomeSynced {
			synced++
		}
	}

	assert.Equal(t, int64(1), f.remote.maxActive.Load(), "two fetches overlapped")
	assert.GreaterOrEqual(t, synced, 1)
	assert.Equal(t, int64(synced), f.remote.calls.Load())
}

// ── overlapping writes ──────────────────────────────────────────────────────

// hookedEngine runs before once, right ahead of the first Reconcile.
type hookedEngine struct {
	ReconciliationEngine
	once   sync.Once
	before func()
}

func (e *hookedEngine) Reconcile(ctx context.Context, remote []models.Story, retain ...string) (models.ReconcileResult, error) {
	e.once.Do(e.before)
	return e.ReconciliationEngine.Reconcile(ctx, remote, retain...)
}

func TestSyncController_LocalCreateDuringCommitIsKept(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	f.controller.Start(ctx)

	mine := story("mine", time.Second)
	created := make(chan error, 1)
	f.controller.engine = &hookedEngine{
		ReconciliationEngine: f.controller.engine,
		before: func() {
			go func() { created <- f.controller.RecordLocalCreate(ctx, mine) }()
			// даём локальной записи шанс вклиниться перед коммитом
			time.Sleep(30 * time.Millisecond)
		},
	}

	f.remote.setSnapshot(story("other", time.Minute))
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerManualRefresh))
	require.NoError(t, <-created)

	_, ok := f.local.GetByID(ctx, "mine")
	assert.True(t, ok, "local create lost to a concurrent pass")
	assert.Contains(t, f.controller.state.KnownIDs(), "mine")

	f.remote.setSnapshot(story("other", time.Minute), mine)
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerManualRefresh))
	f.controller.Wait()

	assert.NotContains(t, f.dispatcher.notified(), "mine")
	assert.ElementsMatch(t, []string{"mine", "other"}, models.StoryIDs(f.local.GetAll(ctx)))
}

func TestSyncController_OfflineDuringPassWins(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	f.remote.setSnapshot()
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerNetworkOnline))

	f.remote.gate = make(chan struct{})
	f.remote.started = make(chan struct{}, 1)

	pass := make(chan models.SyncOutcome, 1)
	go func() { pass <- f.controller.Trigger(ctx, models.TriggerManualRefresh) }()

	<-f.remote.started
	assert.Equal(t, models.OutcomeOffline, f.controller.Trigger(ctx, models.TriggerNetworkOffline))

	close(f.remote.gate)
	require.Equal(t, models.OutcomeSynced, <-pass)

	assert.True(t, f.controller.IsOffline())
	assert.True(t, f.updates.last(t).Offline)

	assert.Equal(t, models.OutcomeSuppressed, f.controller.Trigger(ctx, models.TriggerTimerTick))
	assert.Equal(t, int64(2), f.remote.calls.Load())

	assert.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerNetworkOnline))
	assert.False(t, f.controller.IsOffline())
}

// ── failures ────────────────────────────────────────────────────────────────

func TestSyncController_FetchFailureKeepsLocalData(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	a := story("a", time.Hour)
	require.NoError(t, f.local.Put(ctx, a))
	f.controller.Start(ctx)

	f.remote.fail(adapter.ErrNetwork)
	outcome := f.controller.Trigger(ctx, models.TriggerManualRefresh)

	assert.Equal(t, models.OutcomeFailed, outcome)
	assert.Equal(t, models.PhaseBackoff, f.controller.State())
	assert.True(t, f.controller.IsStale())
	assert.Equal(t, []string{"a"}, models.StoryIDs(f.local.GetAll(ctx)))

	last := f.updates.last(t)
	assert.True(t, last.Stale)
	assert.Equal(t, []string{"a"}, models.StoryIDs(last.Stories))

	// the next successful pass clears the stale flag
	f.remote.setSnapshot(a)
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerNetworkOnline))
	assert.False(t, f.controller.IsStale())
	assert.Equal(t, models.PhaseIdle, f.controller.State())
}

func TestSyncController_NotificationFailureIsSwallowed(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	f.dispatcher.err = errors.New("redis down")

	f.remote.setSnapshot(story("a", time.Second))
	assert.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerNetworkOnline))
	f.controller.Wait()

	assert.Equal(t, []string{"a"}, f.dispatcher.notified())
}

// ── offline / visibility ────────────────────────────────────────────────────

func TestSyncController_NetworkOffline(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	require.NoError(t, f.local.Put(ctx, story("a", time.Hour)))
	f.controller.Start(ctx)

	outcome := f.controller.Trigger(ctx, models.TriggerNetworkOffline)

	assert.Equal(t, models.OutcomeOffline, outcome)
	assert.True(t, f.controller.IsOffline())
	assert.Equal(t, models.PhaseIdle, f.controller.State())
	assert.Zero(t, f.remote.calls.Load(), "offline never fetches")

	last := f.updates.last(t)
	assert.True(t, last.Offline)
	assert.Equal(t, []string{"a"}, models.StoryIDs(last.Stories))

	assert.Equal(t, models.OutcomeSuppressed, f.controller.Trigger(ctx, models.TriggerTimerTick))
	assert.Zero(t, f.remote.calls.Load())
}

func TestSyncController_TimerTickSuppressedWhileHidden(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	f.remote.setSnapshot()
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerNetworkOnline))

	f.visibility.hidden.Store(true)
	assert.Equal(t, models.OutcomeSuppressed, f.controller.Trigger(ctx, models.TriggerTimerTick))

	f.visibility.hidden.Store(false)
	assert.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerTimerTick))
	assert.Equal(t, int64(2), f.remote.calls.Load())
}

// ── novelty ─────────────────────────────────────────────────────────────────

func TestSyncController_LocalCreateNeverSelfNotifies(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	mine := story("mine", time.Second)
	require.NoError(t, f.controller.RecordLocalCreate(ctx, mine))
	assert.Equal(t, models.TriggerLocalWriteCompleted, f.updates.last(t).Cause)

	f.remote.setSnapshot(mine)
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerLocalWriteCompleted))
	f.controller.Wait()

	assert.Empty(t, f.dispatcher.notified())
}

func TestSyncController_UnechoedCreateNeverSelfNotifies(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	f.controller.Start(ctx)

	mine := story("mine", time.Second)
	f.controller.ExpectLocalCreate(models.StoryDraft{Description: "  " + mine.Description + " "})

	other := story("other", 2*time.Second)
	f.remote.setSnapshot(mine, other)
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerLocalWriteCompleted))
	f.controller.Wait()

	assert.Equal(t, []string{"other"}, f.dispatcher.notified())
	assert.Contains(t, f.controller.state.KnownIDs(), "mine")
}

func TestSyncController_ReleasedDraftMarkerNoLongerMatches(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	f.controller.Start(ctx)

	s := story("s1", time.Second)
	done := f.controller.ExpectLocalCreate(models.StoryDraft{Description: s.Description})
	done()

	f.remote.setSnapshot(s)
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerManualRefresh))
	f.controller.Wait()

	assert.Equal(t, []string{"s1"}, f.dispatcher.notified())
}

func TestSyncController_DraftMarkerExpires(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	f.controller.Start(ctx)

	s := story("s1", time.Second)
	f.controller.ExpectLocalCreate(models.StoryDraft{Description: s.Description})

	f.controller.now = func() time.Time { return time.Now().Add(time.Minute) }
	f.remote.setSnapshot(s)
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerManualRefresh))
	f.controller.Wait()

	assert.Equal(t, []string{"s1"}, f.dispatcher.notified())
}

func TestSyncController_PendingLocalCreateSurvivesLaggingSnapshot(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	mine := story("mine", time.Second)
	require.NoError(t, f.controller.RecordLocalCreate(ctx, mine))

	// the server has not listed the new story yet
	f.remote.setSnapshot(story("other", time.Hour))
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerManualRefresh))

	_, ok := f.local.GetByID(ctx, "mine")
	assert.True(t, ok, "pending local story removed before the server confirmed it")

	// once the pending entry expires the snapshot wins
	f.controller.now = func() time.Time { return time.Now().Add(time.Minute) }
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerManualRefresh))

	_, ok = f.local.GetByID(ctx, "mine")
	assert.False(t, ok)
}

func TestSyncController_OwnStoriesNeverNotify(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	f.remote.userID = "user-1"

	own := story("own", time.Second)
	own.OwnerID = "user-1"
	other := story("other", 5*time.Second)
	f.remote.setSnapshot(own, other)

	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerNetworkOnline))
	f.controller.Wait()

	assert.Equal(t, []string{"other"}, f.dispatcher.notified())
}

func TestSyncController_NotifiesOncePerStory(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	f.remote.setSnapshot(story("a", time.Second))
	for range 3 {
		require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerRemoteChanged))
	}
	f.controller.Wait()

	assert.Equal(t, []string{"a"}, f.dispatcher.notified())
	assert.Equal(t, "a", f.controller.state.LastNotifiedID())
}

func TestSyncController_OldStoriesDoNotNotify(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	f.remote.setSnapshot(story("old", 5*time.Minute))
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerNetworkOnline))
	f.controller.Wait()

	assert.Empty(t, f.dispatcher.notified())
}

// ── idempotence ─────────────────────────────────────────────────────────────

func TestSyncController_RepeatedPassesAreIdempotent(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	f.remote.setSnapshot(story("a", time.Hour), story("b", 2*time.Hour))
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerNetworkOnline))
	first := f.local.GetAll(ctx)

	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerNetworkOnline))
	second := f.local.GetAll(ctx)

	require.Len(t, second, 2)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.True(t, first[i].UpdatedAt.Equal(second[i].UpdatedAt), "unchanged story %s was rewritten", first[i].ID)
		assert.True(t, first[i].CreatedAt.Equal(second[i].CreatedAt))
	}
}

func TestSyncController_CreatedAtIsNeverOverwritten(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	a := story("a", time.Hour)
	require.NoError(t, f.local.Put(ctx, a))
	f.controller.Start(ctx)

	changed := a
	changed.Description = "edited"
	changed.CreatedAt = time.Now().UTC()
	f.remote.setSnapshot(changed)
	require.Equal(t, models.OutcomeSynced, f.controller.Trigger(ctx, models.TriggerManualRefresh))

	got, ok := f.local.GetByID(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, "edited", got.Description)
	assert.True(t, got.CreatedAt.Equal(a.CreatedAt))
}

// ── listeners ───────────────────────────────────────────────────────────────

func TestSyncController_ListenerCancel(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	rec := &updateRecorder{}
	cancel := f.controller.OnStoryListChanged(rec.record)
	f.controller.Start(ctx)
	cancel()

	require.NoError(t, f.controller.RecordLocalDelete(ctx, "missing"))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.updates, 1)
}
