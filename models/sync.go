// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncTrigger names the event that asked the sync controller for a pass.
type SyncTrigger int

const (
	TriggerNetworkOnline SyncTrigger = iota + 1
	TriggerNetworkOffline
	TriggerVisibilityRegained
	TriggerTimerTick
	TriggerLocalWriteCompleted
	TriggerRemoteChanged
	TriggerManualRefresh
)

func (t SyncTrigger) String() string {
	switch t {
	case TriggerNetworkOnline:
		return "network_online"
	case TriggerNetworkOffline:
		return "network_offline"
	case TriggerVisibilityRegained:
		return "visibility_regained"
	case TriggerTimerTick:
		return "timer_tick"
	case TriggerLocalWriteCompleted:
		return "local_write_completed"
	case TriggerRemoteChanged:
		return "remote_changed"
	case TriggerManualRefresh:
		return "manual_refresh"
	default:
		return "unknown"
	}
}

// SyncPhase is the state of the sync controller state machine.
type SyncPhase int32

const (
	PhaseIdle SyncPhase = iota
	PhaseSyncing
	PhaseBackoff
)

func (p SyncPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSyncing:
		return "syncing"
	case PhaseBackoff:
		return "backoff"
	default:
		return "unknown"
	}
}

// SyncOutcome reports what the controller did with a trigger.
type SyncOutcome int

const (
	// OutcomeSynced means a pass ran and committed a fresh snapshot.
	OutcomeSynced SyncOutcome = iota + 1
	// OutcomeDropped means another pass was already in flight.
	OutcomeDropped
	// OutcomeSuppressed means the trigger was ignored (e.g. a tick while hidden).
	OutcomeSuppressed
	// OutcomeOffline means the controller switched to offline mode.
	OutcomeOffline
	// OutcomeFailed means the pass failed and local data was served instead.
	OutcomeFailed
)

func (o SyncOutcome) String() string {
	switch o {
	case OutcomeSynced:
		return "synced"
	case OutcomeDropped:
		return "dropped"
	case OutcomeSuppressed:
		return "suppressed"
	case OutcomeOffline:
		return "offline"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StoryListUpdate is delivered to story list listeners after every committed
// reconciliation, local write or fallback to local data.
type StoryListUpdate struct {
	Stories []Story
	// Offline is set while the network is known to be unreachable.
	Offline bool
	// Stale is set when the last pass failed and Stories is the last known data.
	Stale bool
	Cause SyncTrigger
}

// StoryState is the lightweight descriptor of a locally stored story used by
// the reconcile planner.
type StoryState struct {
	ID          string
	Fingerprint string
}

// ReconcilePlan classifies a remote snapshot against the local replica.
type ReconcilePlan struct {
	// Added holds remote stories unknown locally.
	Added []Story
	// Changed holds remote stories whose content differs from the local copy.
	Changed []Story
	// Unchanged holds ids whose content already matches.
	Unchanged []string
	// Removed holds local ids absent from the snapshot.
	Removed []string
	// Skipped counts remote entries without an id.
	Skipped int
}

// IsEmpty reports whether applying the plan would not change anything.
func (p ReconcilePlan) IsEmpty() bool {
	return len(p.Added) == 0 && len(p.Changed) == 0 && len(p.Removed) == 0
}

// ReconcileResult summarises an applied reconciliation.
type ReconcileResult struct {
	Added     []string
	Updated   []string
	Removed   []string
	Unchanged int
	Skipped   int
}

// BatchResult summarises a batch upsert.
type BatchResult struct {
	Written []string
	Skipped int
}
