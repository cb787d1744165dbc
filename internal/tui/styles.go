package tui

import (
	"github.com/charmbracelet/lipgloss"

	"notes-client/internal/model"
)

const (
	colorAccent   = lipgloss.Color("#FFA000")
	colorMuted    = lipgloss.Color("#9E9E9E")
	colorDisabled = lipgloss.Color("#BBBBBB")
	colorInk      = lipgloss.Color("#455A64")
	colorPicker   = lipgloss.Color("#FFE3B3")
	colorError    = lipgloss.Color("#F99494")
)

const cardWidth = 30

var (
	logoStyle = lipgloss.NewStyle().Bold(true).Foreground(colorInk)

	searchStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	newNoteStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorInk).
			Padding(0, 1).
			Width(cardWidth*2 + 4)

	sectionTitleStyle = lipgloss.NewStyle().Foreground(colorInk).MarginTop(1)

	helpStyle = lipgloss.NewStyle().Foreground(colorMuted)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorError).
			Padding(0, 2).
			Bold(true)

	favoriteOn  = lipgloss.NewStyle().Foreground(colorAccent).Render("★")
	favoriteOff = lipgloss.NewStyle().Foreground(colorInk).Render("☆")
)

// cardStyle - рамка карточки в цвете заметки; выбранная карточка выделяется рамкой
func cardStyle(note model.Note, selected bool) lipgloss.Style {
	border := lipgloss.RoundedBorder()
	borderColor := colorMuted
	if selected {
		border = lipgloss.ThickBorder()
		borderColor = colorInk
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Background(lipgloss.Color(backgroundOf(note))).
		Foreground(lipgloss.Color("#000000")).
		Padding(0, 1).
		Width(cardWidth)
}

// dividerColor - на белой карточке разделитель темный, на цветной - светлый
func dividerColor(note model.Note) lipgloss.Color {
	if note.HasColor() {
		return lipgloss.Color("#FFFFFF")
	}
	return lipgloss.Color("#000000")
}

func backgroundOf(note model.Note) string {
	if !note.HasColor() {
		return model.NoColor
	}
	return note.Color
}

func swatch(color string, selected bool) string {
	s := lipgloss.NewStyle().Background(lipgloss.Color(color))
	if selected {
		return s.Foreground(lipgloss.Color("#000000")).Render("[]")
	}
	return s.Render("  ")
}
