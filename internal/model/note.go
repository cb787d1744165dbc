package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// NoColor - зарезервированное значение цвета "без цвета"
const NoColor = "#fff"

// MinFieldLength минимальная длина заголовка и текста новой заметки (после TrimSpace)
const MinFieldLength = 3

var (
	// ErrTitleTooShort возвращается, когда заголовок черновика короче MinFieldLength
	ErrTitleTooShort = errors.New("Note title must be at least 3 characters long.")
	// ErrTextTooShort возвращается, когда текст черновика короче MinFieldLength
	ErrTextTooShort = errors.New("Note text must be at least 3 characters long.")
)

// palette - фиксированный набор цветов для выбора (сервер его не проверяет)
var palette = []string{
	"#BAE2FF",
	"#B9FFDD",
	"#FFE8AC",
	"#FFCAB9",
	"#F99494",
	"#9DD6FF",
	"#ECA1FF",
	"#DAFF8B",
	"#FFA285",
	"#CDCDCD",
	"#979797",
	"#A99A7C",
}

// Palette возвращает копию палитры цветов
func Palette() []string {
	out := make([]string, len(palette))
	copy(out, palette)
	return out
}

// PaletteIndex возвращает позицию цвета в палитре (без учета регистра) или -1
func PaletteIndex(color string) int {
	for i, c := range palette {
		if strings.EqualFold(c, color) {
			return i
		}
	}
	return -1
}

// Note представляет заметку в том виде, в котором её отдает API
type Note struct {
	ID         string `json:"_id"`        // Идентификатор, назначается сервером (пустой у черновика)
	Title      string `json:"title"`      // Заголовок
	Text       string `json:"text"`       // Текст
	IsFavorite bool   `json:"isFavorite"` // Избранная ли заметка
	Color      string `json:"color"`      // Цвет (hex) или NoColor
	CreatedAt  string `json:"createdAt"`  // Дата создания, назначается сервером
}

// NewDraft возвращает пустой черновик со значениями по умолчанию
func NewDraft() Note {
	return Note{Color: NoColor}
}

// ValidateDraft проверяет черновик перед созданием.
// Заголовок и текст проверяются независимо, первым - заголовок.
func (n *Note) ValidateDraft() error {
	if trimmedLen(n.Title) < MinFieldLength {
		return ErrTitleTooShort
	}
	if trimmedLen(n.Text) < MinFieldLength {
		return ErrTextTooShort
	}
	return nil
}

// HasColor сообщает, выбран ли у заметки цвет
func (n *Note) HasColor() bool {
	return n.Color != "" && n.Color != NoColor
}

func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
