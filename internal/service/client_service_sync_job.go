package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

const defaultSyncInterval = 10 * time.Second

type syncJob struct {
	controller SyncController
	interval   time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a job that sends TimerTick to controller every interval.
// If interval is zero or negative it defaults to 10 seconds. The job is idle
// until Start is called.
func NewSyncJob(controller SyncController, interval time.Duration) SyncJob {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &syncJob{controller: controller, interval: interval}
}

// Start stops any previously running ticker, then launches a goroutine that
// triggers a pass every interval. The goroutine exits when ctx is cancelled
// or Stop is called.
func (j *syncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.controller.Trigger(jobCtx, models.TriggerTimerTick)
			}
		}
	}()
}

// Stop cancels the ticker goroutine and blocks until it has exited. Safe to
// call when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
