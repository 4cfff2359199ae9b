package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	title string
	page  string // "" quits
}

// MenuModel is the entry page of the auth flow.
type MenuModel struct {
	items  []menuItem
	idx    int
	status string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{title: "Войти", page: "login"},
			{title: "Зарегистрироваться", page: "register"},
			{title: "Выйти"},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterSuccessNotice:
		m.status = "Регистрация прошла успешно"
		if msg.Email != "" {
			m.status = "Аккаунт " + msg.Email + " создан, теперь войдите"
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			m.idx = max(m.idx-1, 0)
		case key.Matches(msg, keys.down):
			m.idx = min(m.idx+1, len(m.items)-1)
		case key.Matches(msg, keys.enter):
			page := m.items[m.idx].page
			if page == "" {
				return m, tea.Quit
			}
			return m, func() tea.Msg { return NavigateTo{Page: page} }
		}
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	if m.status != "" {
		b.WriteString(okStyle.Render(m.status))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		if i == m.idx {
			b.WriteString(selectedStyle.Render("> " + item.title))
		} else {
			b.WriteString("  " + item.title)
		}
		b.WriteString("\n")
	}

	return renderPage("ИСТОРИИ РЯДОМ", strings.TrimRight(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация │ v: версия")
}
