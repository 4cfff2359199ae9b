package host

import "sync"

// Visibility tracks whether the story view is in the foreground.
type Visibility struct {
	mu          sync.RWMutex
	visible     bool
	subscribers map[int]func(visible bool)
	nextID      int
}

// NewVisibility returns a tracker starting in the visible state.
func NewVisibility() *Visibility {
	return &Visibility{visible: true, subscribers: make(map[int]func(bool))}
}

func (v *Visibility) IsVisible() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visible
}

// Set records the new state. Subscribers are called synchronously and only
// on an actual change.
func (v *Visibility) Set(visible bool) {
	v.mu.Lock()
	if v.visible == visible {
		v.mu.Unlock()
		return
	}
	v.visible = visible
	subs := snapshot(v.subscribers)
	v.mu.Unlock()

	for _, fn := range subs {
		fn(visible)
	}
}

// Subscribe registers fn for state changes and returns its cancel func.
func (v *Visibility) Subscribe(fn func(visible bool)) (cancel func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	v.subscribers[id] = fn

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subscribers, id)
	}
}

func snapshot(subs map[int]func(bool)) []func(bool) {
	out := make([]func(bool), 0, len(subs))
	for _, fn := range subs {
		out = append(out, fn)
	}
	return out
}
