// Package tui is the terminal front end of the story client: the auth flow
// and the story feed.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/models"
)

type TUI struct {
	auth       service.ClientAuthService
	stories    service.StoryService
	visibility visibilitySetter
	notifier   *Notifier
	buildInfo  models.AppBuildInfo
	logger     *logger.Logger
}

// New builds the TUI. stories may be nil until the sync engine is wired;
// it is required by MainLoop only.
func New(auth service.ClientAuthService, notifier *Notifier, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	if notifier == nil {
		notifier = NewNotifier()
	}
	return &TUI{
		auth:      auth,
		notifier:  notifier,
		buildInfo: buildInfo,
		logger:    logger,
	}
}

// Attach binds the story feed and the host visibility signal.
func (t *TUI) Attach(stories service.StoryService, visibility visibilitySetter) {
	t.stories = stories
	t.visibility = visibility
}

// AuthFlow runs the menu, login and register pages until a login succeeds.
func (t *TUI) AuthFlow(ctx context.Context) (models.LoginResult, error) {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.auth),
		"register": NewRegisterModel(ctx, t.auth),
	}

	root := NewRootModel(pages, "menu", t.buildInfo)
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return models.LoginResult{}, err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.LoginResult{}, tea.ErrProgramKilled
	}
	if result.quitByUser || !result.loggedIn {
		return models.LoginResult{}, ErrUserQuit
	}

	return result.result, nil
}

// MainLoop runs the story feed until the user quits or ctx is cancelled.
func (t *TUI) MainLoop(ctx context.Context) error {
	if t.stories == nil {
		return errors.New("tui: story service is not attached")
	}

	model := newFeedModel(ctx, t.stories, t.visibility, t.auth.CurrentUserID())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))

	t.notifier.attach(program)
	defer t.notifier.detach()

	cancel := t.stories.OnStoryListChanged(func(update models.StoryListUpdate) {
		program.Send(storiesUpdatedMsg{update: update})
	})
	defer cancel()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		t.logger.Info().Str("func", "TUI.MainLoop").Msg("feed closed on shutdown")
		return nil
	}
	return err
}
