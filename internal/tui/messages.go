package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-story-sync/models"
)

// NavigateTo switches the active page of [RootModel]. A non-nil Payload is
// delivered to the new page as the next message.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the auth flow when Err is nil.
type LoginResult struct {
	Err    error
	Email  string
	Result models.LoginResult
}

// RegisterResult is produced by the register page.
type RegisterResult struct {
	Err   error
	Email string
}

// RegisterSuccessNotice is shown by the menu after a registration.
type RegisterSuccessNotice struct {
	Email string
}

type storiesUpdatedMsg struct {
	update models.StoryListUpdate
}

type searchResultMsg struct {
	query string
	items []models.Story
}

type refreshDoneMsg struct {
	outcome models.SyncOutcome
}

type createDoneMsg struct {
	story models.Story
	err   error
}

type deleteDoneMsg struct {
	id  string
	err error
}

type copiedMsg struct {
	err error
}

type newStoryMsg struct {
	story models.Story
}

type clearBannerMsg struct {
	seq int
}
