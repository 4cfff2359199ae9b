package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/notify"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/models"
)

const (
	defaultFetchTimeout  = 15 * time.Second
	defaultNotifyTimeout = 10 * time.Second
)

// VisibilityReporter reports whether the story list is on screen.
type VisibilityReporter interface {
	IsVisible() bool
}

type syncController struct {
	local      store.LocalStore
	remote     adapter.RemoteSource
	engine     ReconciliationEngine
	detector   NoveltyDetector
	dispatcher notify.Dispatcher
	visibility VisibilityReporter

	state         *SyncState
	fetchTimeout  time.Duration
	pendingTTL    time.Duration
	notifyTimeout time.Duration
	now           func() time.Time

	// commitMu serializes the commit step of a pass with local writes.
	commitMu sync.Mutex

	listenersMu  sync.Mutex
	listeners    map[int]func(models.StoryListUpdate)
	nextListener int

	notifyWG sync.WaitGroup

	logger *logger.Logger
}

// NewSyncController wires a controller with its own [SyncState]. A nil
// dispatcher disables notifications; a nil visibility counts as visible.
func NewSyncController(
	local store.LocalStore,
	remote adapter.RemoteSource,
	engine ReconciliationEngine,
	detector NoveltyDetector,
	dispatcher notify.Dispatcher,
	visibility VisibilityReporter,
	workersCfg config.ClientWorkers,
	logger *logger.Logger,
) SyncController {
	fetchTimeout := workersCfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	pendingTTL := workersCfg.NoveltyWindow
	if pendingTTL <= 0 {
		pendingTTL = defaultNoveltyWindow
	}

	return &syncController{
		local:         local,
		remote:        remote,
		engine:        engine,
		detector:      detector,
		dispatcher:    dispatcher,
		visibility:    visibility,
		state:         NewSyncState(),
		fetchTimeout:  fetchTimeout,
		pendingTTL:    pendingTTL,
		notifyTimeout: defaultNotifyTimeout,
		now:           time.Now,
		listeners:     make(map[int]func(models.StoryListUpdate)),
		logger:        logger,
	}
}

func (c *syncController) Start(ctx context.Context) {
	stories := c.local.GetAll(ctx)
	c.state.setKnown(storyIDs(stories))

	c.logger.Info().
		Str("func", "syncController.Start").
		Int("cached", len(stories)).
		Msg("sync controller started")

	c.publishStories(stories, 0)
}

func (c *syncController) Trigger(ctx context.Context, trigger models.SyncTrigger) models.SyncOutcome {
	switch trigger {
	case models.TriggerNetworkOffline:
		c.state.goOffline()
		if !c.state.InFlight() {
			c.state.setPhase(models.PhaseIdle)
		}
		c.logger.Info().Str("func", "syncController.Trigger").Msg("network offline, serving local data")
		c.publish(ctx, trigger)
		return models.OutcomeOffline

	case models.TriggerNetworkOnline:
		c.state.online.Store(true)

	case models.TriggerTimerTick:
		if !c.state.online.Load() || !c.isVisible() {
			return models.OutcomeSuppressed
		}
	}

	return c.runPass(ctx, trigger)
}

// runPass runs one reconciliation pass: fetch, detect, commit, notify,
// publish. Novelty is detected against the ids known before the commit.
func (c *syncController) runPass(ctx context.Context, trigger models.SyncTrigger) models.SyncOutcome {
	if !c.state.tryBegin() {
		c.logger.Debug().
			Str("func", "syncController.runPass").
			Stringer("trigger", trigger).
			Msg("pass in flight, trigger dropped")
		return models.OutcomeDropped
	}
	defer c.state.end()

	epoch := c.state.offlineEpoch()
	c.state.setPhase(models.PhaseSyncing)

	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	snapshot, err := c.remote.FetchAll(fetchCtx)
	cancel()
	if err != nil {
		return c.fail(ctx, trigger, "fetch", err)
	}

	c.commitMu.Lock()
	known := c.state.KnownIDs()
	for _, id := range c.state.claimDrafts(snapshot, known, c.now(), c.pendingTTL) {
		known[id] = struct{}{}
	}
	novel, isNovel := c.detector.Detect(known, c.foreign(snapshot), c.state.LastNotifiedID())

	retain := c.state.retainPending(snapshot, c.now(), c.pendingTTL)
	result, err := c.engine.Reconcile(ctx, snapshot, retain...)
	if err != nil {
		c.commitMu.Unlock()
		return c.fail(ctx, trigger, "commit", err)
	}

	c.state.setKnown(append(storyIDs(snapshot), retain...))
	c.commitMu.Unlock()

	if isNovel {
		c.state.setLastNotified(novel.ID)
		c.dispatch(ctx, novel)
	}

	c.state.stale.Store(false)
	// An offline event seen during the pass wins over the pass result.
	c.state.confirmOnline(epoch)
	c.state.setPhase(models.PhaseIdle)

	c.logger.Info().
		Str("func", "syncController.runPass").
		Stringer("trigger", trigger).
		Int("remote", len(snapshot)).
		Int("added", len(result.Added)).
		Int("updated", len(result.Updated)).
		Int("removed", len(result.Removed)).
		Bool("novel", isNovel).
		Msg("sync pass completed")

	c.publish(ctx, trigger)
	return models.OutcomeSynced
}

func (c *syncController) fail(ctx context.Context, trigger models.SyncTrigger, step string, err error) models.SyncOutcome {
	c.logger.Err(err).
		Str("func", "syncController.runPass").
		Stringer("trigger", trigger).
		Str("step", step).
		Msg("sync pass failed, serving local data")

	c.state.stale.Store(true)
	c.state.setPhase(models.PhaseBackoff)
	c.publish(ctx, trigger)
	return models.OutcomeFailed
}

// foreign drops stories owned by the current user; their creator is never
// notified about them.
func (c *syncController) foreign(snapshot []models.Story) []models.Story {
	self := c.remote.UserID()
	if self == "" {
		return snapshot
	}

	out := make([]models.Story, 0, len(snapshot))
	for _, s := range snapshot {
		if s.OwnerID == self {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (c *syncController) dispatch(ctx context.Context, story models.Story) {
	if c.dispatcher == nil {
		return
	}

	c.notifyWG.Add(1)
	go func() {
		defer c.notifyWG.Done()

		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.notifyTimeout)
		defer cancel()

		if err := c.dispatcher.Notify(notifyCtx, story); err != nil {
			c.logger.Err(err).
				Str("func", "syncController.dispatch").
				Str("story_id", story.ID).
				Msg("notification failed")
		}
	}()
}

func (c *syncController) RecordLocalCreate(ctx context.Context, story models.Story) error {
	c.commitMu.Lock()
	if err := c.local.Put(ctx, story); err != nil {
		c.commitMu.Unlock()
		return err
	}
	c.state.addLocal(story.ID, c.now())
	c.commitMu.Unlock()

	c.publish(ctx, models.TriggerLocalWriteCompleted)
	return nil
}

func (c *syncController) ExpectLocalCreate(draft models.StoryDraft) func() {
	seq := c.state.addDraft(draft.Description, c.now())
	return func() { c.state.dropDraft(seq) }
}

func (c *syncController) RecordLocalDelete(ctx context.Context, id string) error {
	c.commitMu.Lock()
	if err := c.local.Delete(ctx, id); err != nil {
		c.commitMu.Unlock()
		return err
	}
	c.state.dropPending(id)
	c.commitMu.Unlock()

	c.publish(ctx, models.TriggerLocalWriteCompleted)
	return nil
}

func (c *syncController) State() models.SyncPhase {
	return c.state.Phase()
}

func (c *syncController) IsOffline() bool {
	return !c.state.online.Load()
}

func (c *syncController) IsStale() bool {
	return c.state.stale.Load()
}

func (c *syncController) OnStoryListChanged(fn func(models.StoryListUpdate)) func() {
	c.listenersMu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		delete(c.listeners, id)
		c.listenersMu.Unlock()
	}
}

func (c *syncController) Wait() {
	c.notifyWG.Wait()
}

func (c *syncController) isVisible() bool {
	return c.visibility == nil || c.visibility.IsVisible()
}

func (c *syncController) publish(ctx context.Context, cause models.SyncTrigger) {
	c.publishStories(c.local.GetAll(ctx), cause)
}

func (c *syncController) publishStories(stories []models.Story, cause models.SyncTrigger) {
	update := models.StoryListUpdate{
		Stories: stories,
		Offline: c.IsOffline(),
		Stale:   c.IsStale(),
		Cause:   cause,
	}

	c.listenersMu.Lock()
	fns := make([]func(models.StoryListUpdate), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.listenersMu.Unlock()

	for _, fn := range fns {
		fn(update)
	}
}

func storyIDs(stories []models.Story) []string {
	ids := make([]string, 0, len(stories))
	for _, s := range stories {
		if strings.TrimSpace(s.ID) == "" {
			continue
		}
		ids = append(ids, s.ID)
	}
	return ids
}
