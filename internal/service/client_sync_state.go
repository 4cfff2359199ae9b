// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

// SyncState is the mutable state of one [SyncController]. Flags are atomics;
// the id sets are guarded by mu.
type SyncState struct {
	inFlight atomic.Bool
	online   atomic.Bool
	stale    atomic.Bool
	phase    atomic.Int32

	mu             sync.Mutex
	knownIDs       map[string]struct{}
	pendingLocal   map[string]time.Time
	lastNotifiedID string
	offlineSeq     uint64

	drafts   map[uint64]pendingDraft
	draftSeq uint64
}

// pendingDraft is an upload in progress whose story id is not known yet.
type pendingDraft struct {
	description string
	at          time.Time
}

func NewSyncState() *SyncState {
	return &SyncState{
		knownIDs:     make(map[string]struct{}),
		pendingLocal: make(map[string]time.Time),
		drafts:       make(map[uint64]pendingDraft),
	}
}

// tryBegin claims the in-flight guard. It returns false when a pass is
// already running.
func (s *SyncState) tryBegin() bool {
	return s.inFlight.CompareAndSwap(false, true)
}

func (s *SyncState) end() {
	s.inFlight.Store(false)
}

func (s *SyncState) InFlight() bool {
	return s.inFlight.Load()
}

// goOffline clears the online flag and bumps the offline sequence.
func (s *SyncState) goOffline() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offlineSeq++
	s.online.Store(false)
}

func (s *SyncState) offlineEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offlineSeq
}

// confirmOnline sets the online flag unless an offline event arrived after
// epoch was taken.
func (s *SyncState) confirmOnline(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offlineSeq != epoch {
		return false
	}
	s.online.Store(true)
	return true
}

func (s *SyncState) Phase() models.SyncPhase {
	return models.SyncPhase(s.phase.Load())
}

func (s *SyncState) setPhase(p models.SyncPhase) {
	s.phase.Store(int32(p))
}

// KnownIDs returns a copy of the ids seen at the end of the last pass.
func (s *SyncState) KnownIDs() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]struct{}, len(s.knownIDs))
	for id := range s.knownIDs {
		known[id] = struct{}{}
	}
	return known
}

func (s *SyncState) setKnown(ids []string) {
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	s.mu.Lock()
	s.knownIDs = known
	s.mu.Unlock()
}

// addLocal marks id as known and pending confirmation by a snapshot.
func (s *SyncState) addLocal(id string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.knownIDs[id] = struct{}{}
	s.pendingLocal[id] = at
}

func (s *SyncState) dropPending(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pendingLocal, id)
}

// retainPending drops pending ids confirmed by snapshot or older than ttl and
// returns the rest.
func (s *SyncState) retainPending(snapshot []models.Story, now time.Time, ttl time.Duration) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, story := range snapshot {
		delete(s.pendingLocal, story.ID)
	}

	retain := make([]string, 0, len(s.pendingLocal))
	for id, at := range s.pendingLocal {
		if now.Sub(at) > ttl {
			delete(s.pendingLocal, id)
			continue
		}
		retain = append(retain, id)
	}
	return retain
}

func (s *SyncState) LastNotifiedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastNotifiedID
}

func (s *SyncState) setLastNotified(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastNotifiedID = id
}

func (s *SyncState) addDraft(description string, at time.Time) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draftSeq++
	s.drafts[s.draftSeq] = pendingDraft{description: strings.TrimSpace(description), at: at}
	return s.draftSeq
}

func (s *SyncState) dropDraft(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, seq)
}

// claimDrafts matches unknown snapshot stories against pending drafts by
// description and returns the ids of the matched stories. Each draft is
// claimed at most once; drafts older than ttl are dropped.
func (s *SyncState) claimDrafts(snapshot []models.Story, known map[string]struct{}, now time.Time, ttl time.Duration) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for seq, d := range s.drafts {
		if now.Sub(d.at) > ttl {
			delete(s.drafts, seq)
		}
	}
	if len(s.drafts) == 0 {
		return nil
	}

	var claimed []string
	for _, story := range snapshot {
		if _, ok := known[story.ID]; ok {
			continue
		}
		description := strings.TrimSpace(story.Description)
		for seq, d := range s.drafts {
			if d.description != description {
				continue
			}
			if !story.CreatedAt.IsZero() && story.CreatedAt.Before(d.at.Add(-ttl)) {
				continue
			}
			delete(s.drafts, seq)
			claimed = append(claimed, story.ID)
			break
		}
	}
	return claimed
}
