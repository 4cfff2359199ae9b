package tui

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-story-sync/models"
)

type messageSender interface {
	Send(msg tea.Msg)
}

// Notifier shows novel stories as a banner in the running feed. It exists
// before the program does; notifications arriving with no program attached
// are dropped.
type Notifier struct {
	program atomic.Pointer[messageSender]
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) attach(s messageSender) {
	n.program.Store(&s)
}

func (n *Notifier) detach() {
	n.program.Store(nil)
}

func (n *Notifier) send(msg tea.Msg) bool {
	p := n.program.Load()
	if p == nil {
		return false
	}
	(*p).Send(msg)
	return true
}

func (n *Notifier) Notify(ctx context.Context, story models.Story) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.send(newStoryMsg{story: story})
	return nil
}
