package service

import (
	"sync"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

const subscriberBuffer = 16

// eventHub is an in-process [EventBroker]. Slow subscribers miss events
// instead of blocking publishers.
type eventHub struct {
	mu   sync.Mutex
	subs map[int]chan models.StoryEvent
	next int

	logger *logger.Logger
}

func NewEventHub(logger *logger.Logger) EventBroker {
	return &eventHub{subs: make(map[int]chan models.StoryEvent), logger: logger}
}

func (h *eventHub) Subscribe() (<-chan models.StoryEvent, func()) {
	ch := make(chan models.StoryEvent, subscriberBuffer)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *eventHub) Publish(event models.StoryEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.logger.Warn().
				Str("func", "eventHub.Publish").
				Int("subscriber", id).
				Str("story_id", event.StoryID).
				Msg("subscriber is slow, event dropped")
		}
	}
}
