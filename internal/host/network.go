package host

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
)

const defaultProbeInterval = 5 * time.Second

// Prober reports whether the story API is reachable.
type Prober interface {
	Probe(ctx context.Context) error
}

// NetworkMonitor probes the API on an interval and notifies subscribers when
// reachability flips. It starts in the offline state; the first successful
// probe reports online.
type NetworkMonitor struct {
	prober   Prober
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger

	mu          sync.RWMutex
	online      bool
	subscribers map[int]func(online bool)
	nextID      int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewNetworkMonitor creates an idle monitor. Each probe is bounded by the
// interval.
func NewNetworkMonitor(prober Prober, interval time.Duration, logger *logger.Logger) *NetworkMonitor {
	if interval <= 0 {
		interval = defaultProbeInterval
	}

	return &NetworkMonitor{
		prober:      prober,
		interval:    interval,
		timeout:     interval,
		logger:      logger,
		subscribers: make(map[int]func(bool)),
	}
}

func (m *NetworkMonitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Subscribe registers fn for reachability changes and returns its cancel
// func.
func (m *NetworkMonitor) Subscribe(fn func(online bool)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// Start probes once immediately, then on every tick, until ctx is cancelled
// or Stop is called.
func (m *NetworkMonitor) Start(ctx context.Context) {
	m.Stop()

	m.mu.Lock()
	monitorCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()

		t := time.NewTicker(m.interval)
		defer t.Stop()

		for {
			m.Check(monitorCtx)

			select {
			case <-monitorCtx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

func (m *NetworkMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// Check runs one probe and publishes the result.
func (m *NetworkMonitor) Check(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.prober.Probe(probeCtx)
	cancel()

	if ctx.Err() != nil {
		return m.IsOnline()
	}
	if err != nil {
		m.logger.Debug().Err(err).Str("func", "NetworkMonitor.Check").Msg("probe failed")
	}

	m.set(err == nil)
	return err == nil
}

func (m *NetworkMonitor) set(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	subs := snapshot(m.subscribers)
	m.mu.Unlock()

	m.logger.Info().Str("func", "NetworkMonitor.set").Bool("online", online).Msg("network state changed")

	for _, fn := range subs {
		fn(online)
	}
}
