package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"notes-client/internal/notecard"
)

const helpText = "tab: focus • enter: search/add/edit • ctrl+f: draft favorite • j/k: select • " +
	"f: favorite • c: color • s: save • u: undo • d: delete • q: quit"

// View рисует страницу: шапка с поиском, форма новой заметки, разделы карточек
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewNewNote())
	b.WriteString("\n")

	if m.favCount > 0 {
		b.WriteString(sectionTitleStyle.Render("Favorites"))
		b.WriteString("\n")
		b.WriteString(m.viewCards(0, m.favCount))
		b.WriteString("\n")
	}
	if len(m.order) > m.favCount {
		b.WriteString(sectionTitleStyle.Render("Others"))
		b.WriteString("\n")
		b.WriteString(m.viewCards(m.favCount, len(m.order)))
		b.WriteString("\n")
	}

	if m.alert != "" {
		b.WriteString("\n")
		b.WriteString(alertStyle.Render(m.alert + "\n\n[enter] OK"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpText))
	return b.String()
}

func (m *Model) viewHeader() string {
	search := searchStyle
	if m.focus == focusSearch {
		search = search.BorderForeground(colorInk)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		logoStyle.Render("CoreNotes "),
		search.Render("⌕ "+m.search.View()),
	)
}

func (m *Model) viewNewNote() string {
	draft := m.service.Draft()

	star := favoriteOff
	if draft.IsFavorite {
		star = favoriteOn
	}

	divider := lipgloss.NewStyle().Foreground(colorMuted).Render(strings.Repeat("─", cardWidth*2))
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.draftTitle.View(), " ", star),
		divider,
		m.draftText.View(),
	)

	style := newNoteStyle
	if m.focus == focusDraftTitle || m.focus == focusDraftText {
		style = style.BorderForeground(colorAccent)
	}
	return style.Render(body)
}

// viewCards раскладывает карточки [from, to) по строкам в ширину окна
func (m *Model) viewCards(from, to int) string {
	perRow := max(m.width/(cardWidth+4), 1)

	var rows []string
	var row []string
	for i := from; i < to; i++ {
		card := m.cards[m.order[i]]
		if card == nil {
			continue
		}
		row = append(row, m.viewCard(card, m.focus == focusCards && i == m.selected))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) viewCard(card *notecard.Card, selected bool) string {
	note := card.Note()

	title, text := card.Title(), card.Text()
	if selected && m.editing == editTitle {
		title = m.editInput.View()
	}
	if selected && m.editing == editText {
		text = m.editInput.View()
	}

	star := favoriteOff
	if note.IsFavorite {
		star = favoriteOn
	}

	divider := lipgloss.NewStyle().
		Foreground(dividerColor(note)).
		Render(strings.Repeat("─", cardWidth-2))

	confirm := lipgloss.NewStyle().Foreground(colorDisabled).Render("✓")
	if card.CanConfirm() {
		confirm = lipgloss.NewStyle().Foreground(colorInk).Bold(true).Render("✓ save")
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, title, " ", star),
		divider,
		text,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ◐  ✕"),
	}
	if card.PickerOpen() {
		lines = append(lines, viewPicker(card.Palette(), m.swatch))
	}

	return cardStyle(note, selected).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func viewPicker(palette []string, current int) string {
	swatches := make([]string, 0, len(palette))
	for i, color := range palette {
		swatches = append(swatches, swatch(color, i == current))
	}
	return lipgloss.NewStyle().
		Background(colorPicker).
		Padding(0, 1).
		Render(strings.Join(swatches, ""))
}
