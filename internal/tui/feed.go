package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/models"
)

type feedMode int

const (
	modeList feedMode = iota
	modeDetail
	modeSearch
	modeCreate
	modeConfirmDelete
)

const (
	bannerTTL        = 6 * time.Second
	descriptionWidth = 48
)

// visibilitySetter receives terminal focus changes.
type visibilitySetter interface {
	Set(visible bool)
}

// feedModel is the main screen: the story list with its detail, search,
// create and delete flows.
type feedModel struct {
	ctx        context.Context
	stories    service.StoryService
	visibility visibilitySetter
	userID     string

	// copy writes to the system clipboard.
	copy func(string) error

	items   []models.Story
	idx     int
	offline bool
	stale   bool
	syncing bool
	loading bool
	spinner spinner.Model

	mode   feedMode
	search textinput.Model
	query  string
	form   createForm

	status string
	errMsg string

	banner    string
	bannerSeq int
}

func newFeedModel(ctx context.Context, stories service.StoryService, visibility visibilitySetter, userID string) feedModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	search := textinput.New()
	search.Placeholder = "поиск по автору или описанию"
	search.Width = 40

	return feedModel{
		ctx:        ctx,
		stories:    stories,
		visibility: visibility,
		userID:     userID,
		copy:       clipboard.WriteAll,
		loading:    true,
		spinner:    s,
		search:     search,
	}
}

func (m feedModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoad(), m.spinner.Tick)
}

func (m feedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.FocusMsg:
		if m.visibility != nil {
			m.visibility.Set(true)
		}
		return m, nil
	case tea.BlurMsg:
		if m.visibility != nil {
			m.visibility.Set(false)
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case storiesUpdatedMsg:
		m.loading = false
		m.offline = msg.update.Offline
		m.stale = msg.update.Stale
		if m.query != "" {
			return m, m.cmdSearch(m.query)
		}
		m.setItems(msg.update.Stories)
		return m, nil
	case searchResultMsg:
		if msg.query == m.query {
			m.setItems(msg.items)
		}
		return m, nil
	case refreshDoneMsg:
		m.syncing = false
		switch msg.outcome {
		case models.OutcomeSynced:
			m.status = "Лента обновлена"
			m.errMsg = ""
		case models.OutcomeDropped:
			m.status = "Синхронизация уже идёт"
		default:
			m.errMsg = "Не удалось обновить ленту, показаны сохранённые истории"
		}
		return m, nil
	case createDoneMsg:
		m.form.saving = false
		if msg.err != nil {
			m.form.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.mode = modeList
		m.form = createForm{}
		m.status = "История опубликована"
		m.errMsg = ""
		return m, m.cmdLoad()
	case deleteDoneMsg:
		m.mode = modeList
		if msg.err != nil {
			m.errMsg = "Ошибка удаления: " + humanizeError(msg.err)
			return m, nil
		}
		m.status = "История удалена"
		m.errMsg = ""
		return m, m.cmdLoad()
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Буфер обмена недоступен: " + msg.err.Error()
			return m, nil
		}
		m.status = "Ссылка на фото скопирована"
		return m, nil
	case newStoryMsg:
		m.bannerSeq++
		seq := m.bannerSeq
		m.banner = fmt.Sprintf("Новая история от %s: %s", valueOrDash(msg.story.AuthorName), fitText(msg.story.Description, descriptionWidth))
		return m, tea.Tick(bannerTTL, func(time.Time) tea.Msg { return clearBannerMsg{seq: seq} })
	case clearBannerMsg:
		if msg.seq == m.bannerSeq {
			m.banner = ""
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m.forward(msg)
}

func (m feedModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeCreate:
		return m.updateCreate(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modeDetail:
		return m.updateDetail(msg)
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		if _, ok := m.current(); ok {
			m.mode = modeDetail
		}
	case key.Matches(msg, keys.search):
		m.mode = modeSearch
		m.search.SetValue(m.query)
		return m, m.search.Focus()
	case key.Matches(msg, keys.newItem):
		m.mode = modeCreate
		m.form = newCreateForm()
		return m, textinput.Blink
	case key.Matches(msg, keys.refresh):
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.status = ""
		return m, tea.Batch(m.cmdRefresh(), m.spinner.Tick)
	case key.Matches(msg, keys.delete):
		return m.askDelete()
	case key.Matches(msg, keys.copy):
		return m, m.cmdCopy()
	case key.Matches(msg, keys.esc):
		if m.query != "" {
			m.query = ""
			return m, m.cmdLoad()
		}
	}

	return m, nil
}

func (m feedModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.quit):
		m.mode = modeList
	case key.Matches(msg, keys.copy):
		return m, m.cmdCopy()
	case key.Matches(msg, keys.delete):
		return m.askDelete()
	}
	return m, nil
}

func (m feedModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.mode = modeList
		m.query = ""
		m.search.Blur()
		m.search.SetValue("")
		return m, m.cmdLoad()
	case key.Matches(msg, keys.enter):
		m.mode = modeList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	query := strings.TrimSpace(m.search.Value())
	if query == m.query {
		return m, cmd
	}
	m.query = query
	if query == "" {
		return m, tea.Batch(cmd, m.cmdLoad())
	}
	return m, tea.Batch(cmd, m.cmdSearch(query))
}

func (m feedModel) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.esc):
		m.mode = modeList
		m.form = createForm{}
		return m, nil
	case key.Matches(msg, keys.tab):
		m.form.move(1)
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.form.move(-1)
		return m, nil
	case key.Matches(msg, keys.save):
		draft, err := m.form.draft()
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.form.errMsg = ""
		m.form.saving = true
		return m, m.cmdCreate(draft)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m feedModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		story, ok := m.current()
		if !ok {
			m.mode = modeList
			return m, nil
		}
		return m, m.cmdDelete(story.ID)
	case key.Matches(msg, keys.no):
		m.mode = modeList
	}
	return m, nil
}

func (m feedModel) askDelete() (tea.Model, tea.Cmd) {
	story, ok := m.current()
	if !ok {
		return m, nil
	}
	if story.OwnerID != "" && story.OwnerID != m.userID {
		m.errMsg = humanizeError(service.ErrNotStoryOwner)
		return m, nil
	}
	m.mode = modeConfirmDelete
	return m, nil
}

// forward passes non-key messages such as cursor blinks to the active input.
func (m feedModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modeCreate:
		m.form, cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m *feedModel) setItems(items []models.Story) {
	selected := ""
	if story, ok := m.current(); ok {
		selected = story.ID
	}

	m.items = items
	m.idx = 0
	for i, story := range items {
		if story.ID == selected {
			m.idx = i
			break
		}
	}
	if m.mode == modeDetail || m.mode == modeConfirmDelete {
		if _, ok := m.current(); !ok || m.items[m.idx].ID != selected {
			m.mode = modeList
		}
	}
}

func (m feedModel) current() (models.Story, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Story{}, false
	}
	return m.items[m.idx], true
}

// ── commands ────────────────────────────────────────────────────────────────

func (m feedModel) cmdLoad() tea.Cmd {
	ctx, stories := m.ctx, m.stories
	return func() tea.Msg {
		return storiesUpdatedMsg{update: models.StoryListUpdate{
			Stories: stories.GetAllStories(ctx),
			Offline: stories.IsOffline(),
			Stale:   stories.IsStale(),
		}}
	}
}

func (m feedModel) cmdSearch(query string) tea.Cmd {
	ctx, stories := m.ctx, m.stories
	return func() tea.Msg {
		return searchResultMsg{query: query, items: stories.SearchStories(ctx, query)}
	}
}

func (m feedModel) cmdRefresh() tea.Cmd {
	ctx, stories := m.ctx, m.stories
	return func() tea.Msg {
		return refreshDoneMsg{outcome: stories.Refresh(ctx)}
	}
}

func (m feedModel) cmdCreate(draft models.StoryDraft) tea.Cmd {
	ctx, stories := m.ctx, m.stories
	return func() tea.Msg {
		story, err := stories.CreateStory(ctx, draft)
		return createDoneMsg{story: story, err: err}
	}
}

func (m feedModel) cmdDelete(id string) tea.Cmd {
	ctx, stories := m.ctx, m.stories
	return func() tea.Msg {
		return deleteDoneMsg{id: id, err: stories.DeleteStory(ctx, id)}
	}
}

func (m feedModel) cmdCopy() tea.Cmd {
	story, ok := m.current()
	if !ok || story.MediaRef == "" {
		return nil
	}
	copyFn := m.copy
	return func() tea.Msg {
		return copiedMsg{err: copyFn(story.MediaRef)}
	}
}
