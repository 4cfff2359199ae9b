package tui

import (
	"fmt"
	"strings"
)

const (
	listWindow     = 12
	listTextWidth  = 44
	listAuthorSize = 16
	timeLayout     = "02.01.2006 15:04"
)

func (m feedModel) View() string {
	switch m.mode {
	case modeCreate:
		return m.form.view()
	case modeDetail:
		return m.detailView()
	case modeConfirmDelete:
		story, _ := m.current()
		body := fmt.Sprintf("Удалить историю %q?\n\n%s", fitText(story.Description, listTextWidth), helpStyle.Render("y: да │ n: нет"))
		return renderPage("УДАЛЕНИЕ", body, "")
	}
	return m.listView()
}

func (m feedModel) listView() string {
	var b strings.Builder

	if badges := m.badges(); badges != "" {
		b.WriteString(badges)
		b.WriteString("\n\n")
	}
	if m.banner != "" {
		b.WriteString(bannerStyle.Render(m.banner))
		b.WriteString("\n\n")
	}
	if m.mode == modeSearch || m.query != "" {
		b.WriteString("Поиск: ")
		if m.mode == modeSearch {
			b.WriteString(m.search.View())
		} else {
			b.WriteString(m.query)
		}
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Загружаем истории...")
	case len(m.items) == 0 && m.query != "":
		b.WriteString("Ничего не найдено")
	case len(m.items) == 0:
		b.WriteString("Историй пока нет. Нажмите n, чтобы добавить первую.")
	default:
		start, end := window(m.idx, len(m.items), listWindow)
		for i := start; i < end; i++ {
			story := m.items[i]
			line := fmt.Sprintf("%-*s %s", listAuthorSize, fitText(valueOrDash(story.AuthorName), listAuthorSize), fitText(story.Description, listTextWidth))
			if i == m.idx {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d из %d", m.idx+1, len(m.items))))
	}

	m.writeStatus(&b)

	help := "↑/↓: выбор │ enter: открыть │ /: поиск │ n: новая │ r: обновить │ d: удалить │ c: копировать фото │ q: выход"
	if m.mode == modeSearch {
		help = "enter: готово │ esc: сбросить поиск"
	}
	return renderPage("ИСТОРИИ РЯДОМ", b.String(), help)
}

func (m feedModel) detailView() string {
	story, ok := m.current()
	if !ok {
		return renderPage("ИСТОРИЯ", "", "esc: назад")
	}

	var b strings.Builder
	if badges := m.badges(); badges != "" {
		b.WriteString(badges)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Автор    │ %s\n", valueOrDash(story.AuthorName))
	fmt.Fprintf(&b, "Создано  │ %s\n", story.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(&b, "Фото     │ %s\n", valueOrDash(story.MediaRef))
	if story.Location != nil {
		fmt.Fprintf(&b, "Место    │ %.5f, %.5f\n", story.Location.Lat, story.Location.Lon)
	} else {
		b.WriteString("Место    │ -\n")
	}
	b.WriteString("\n")
	b.WriteString(valueOrDash(story.Description))

	m.writeStatus(&b)

	help := "esc: назад │ c: копировать фото"
	if story.OwnerID == "" || story.OwnerID == m.userID {
		help += " │ d: удалить"
	}
	return renderPage("ИСТОРИЯ", b.String(), help)
}

func (m feedModel) badges() string {
	var parts []string
	if m.offline {
		parts = append(parts, offlineBadge.Render("НЕТ СЕТИ"))
	}
	if m.stale {
		parts = append(parts, staleBadge.Render("ДАННЫЕ УСТАРЕЛИ"))
	}
	if m.syncing {
		parts = append(parts, m.spinner.View()+" синхронизация")
	}
	return strings.Join(parts, " ")
}

func (m feedModel) writeStatus(b *strings.Builder) {
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	} else if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(okStyle.Render(m.status))
	}
}

// window returns the visible [start, end) range that keeps idx on screen.
func window(idx, total, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := idx - size/2
	if start < 0 {
		start = 0
	}
	if start+size > total {
		start = total - size
	}
	return start, start + size
}
