package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-story-sync/models"
)

const (
	fieldDescription = iota
	fieldPhoto
	fieldLat
	fieldLon
	formFieldCount
)

var errHalfLocation = errors.New("укажите обе координаты или ни одной")

// createForm collects a story draft. The description is a textarea, the
// photo path and the coordinates are single-line inputs.
type createForm struct {
	description textarea.Model
	inputs      [formFieldCount]textinput.Model
	focus       int
	saving      bool
	errMsg      string
}

func newCreateForm() createForm {
	desc := textarea.New()
	desc.Placeholder = "Что здесь происходит?"
	desc.SetWidth(50)
	desc.SetHeight(4)
	desc.Focus()

	var inputs [formFieldCount]textinput.Model
	for i, placeholder := range map[int]string{
		fieldPhoto: "путь к фото (jpg/png)",
		fieldLat:   "широта, необязательно",
		fieldLon:   "долгота, необязательно",
	} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.Width = 50
		inputs[i] = in
	}

	return createForm{description: desc, inputs: inputs}
}

func (f createForm) update(msg tea.Msg) (createForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == fieldDescription {
		f.description, cmd = f.description.Update(msg)
		return f, cmd
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *createForm) move(delta int) {
	if f.focus == fieldDescription {
		f.description.Blur()
	} else {
		f.inputs[f.focus].Blur()
	}

	f.focus = (f.focus + delta + formFieldCount) % formFieldCount

	if f.focus == fieldDescription {
		f.description.Focus()
	} else {
		f.inputs[f.focus].Focus()
	}
}

// draft reads the photo from disk and parses the coordinates.
func (f createForm) draft() (models.StoryDraft, error) {
	path := strings.TrimSpace(f.inputs[fieldPhoto].Value())
	if path == "" {
		return models.StoryDraft{}, errors.New("укажите путь к фото")
	}

	photo, err := os.ReadFile(path)
	if err != nil {
		return models.StoryDraft{}, fmt.Errorf("не удалось прочитать фото: %w", err)
	}

	draft := models.StoryDraft{
		Description: strings.TrimSpace(f.description.Value()),
		Photo:       photo,
		PhotoName:   filepath.Base(path),
	}

	lat := strings.TrimSpace(f.inputs[fieldLat].Value())
	lon := strings.TrimSpace(f.inputs[fieldLon].Value())
	switch {
	case lat == "" && lon == "":
		return draft, nil
	case lat == "" || lon == "":
		return models.StoryDraft{}, errHalfLocation
	}

	latValue, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return models.StoryDraft{}, fmt.Errorf("широта: %w", err)
	}
	lonValue, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return models.StoryDraft{}, fmt.Errorf("долгота: %w", err)
	}
	draft.Lat, draft.Lon = &latValue, &lonValue

	return draft, nil
}

func (f createForm) view() string {
	var b strings.Builder
	b.WriteString("Описание\n")
	b.WriteString(f.description.View())
	b.WriteString("\n\nФото     │ ")
	b.WriteString(f.inputs[fieldPhoto].View())
	b.WriteString("\nШирота   │ ")
	b.WriteString(f.inputs[fieldLat].View())
	b.WriteString("\nДолгота  │ ")
	b.WriteString(f.inputs[fieldLon].View())

	if f.saving {
		b.WriteString("\n\n[Публикуем...]")
	}
	if f.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Ошибка: " + f.errMsg))
	}

	return renderPage("НОВАЯ ИСТОРИЯ", b.String(), "tab: след. поле │ ctrl+s: опубликовать │ esc: отмена")
}
