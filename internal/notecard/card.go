// Package notecard содержит презентер карточки заметки: локальный буфер
// редактирования, выбор цвета и переключение избранного. Карточка не делает
// сетевых запросов, а сообщает о намерениях пользователя через колбэки.
package notecard

import "notes-client/internal/model"

// Callbacks - намерения пользователя, передаваемые наверх контроллеру
type Callbacks struct {
	OnFavorite    func(note model.Note)
	OnConfirmEdit func(note model.Note)
	OnDelete      func(id string)
	OnColor       func(color string)
}

// Card - состояние одной карточки
type Card struct {
	note       model.Note
	title      string
	text       string
	pickerOpen bool
	callbacks  Callbacks
}

// New создает карточку; буферы заголовка и текста берутся из заметки
func New(note model.Note, callbacks Callbacks) *Card {
	return &Card{
		note:      note,
		title:     note.Title,
		text:      note.Text,
		callbacks: callbacks,
	}
}

// Note возвращает исходную (подтвержденную сервером) заметку
func (c *Card) Note() model.Note { return c.note }

// Title возвращает буфер заголовка
func (c *Card) Title() string { return c.title }

// Text возвращает буфер текста
func (c *Card) Text() string { return c.text }

// EditTitle меняет только локальный буфер
func (c *Card) EditTitle(title string) { c.title = title }

// EditText меняет только локальный буфер
func (c *Card) EditText(text string) { c.text = text }

// Edited - буферы отличаются от заметки
func (c *Card) Edited() bool {
	return c.title != c.note.Title || c.text != c.note.Text
}

// CanConfirm - подтверждение доступно только для измененной заметки
func (c *Card) CanConfirm() bool { return c.Edited() }

// ConfirmEdit отправляет заметку с заголовком и текстом из буферов.
// Возвращает false, если подтверждать нечего.
func (c *Card) ConfirmEdit() bool {
	if !c.CanConfirm() {
		return false
	}
	edited := c.note
	edited.Title = c.title
	edited.Text = c.text
	if c.callbacks.OnConfirmEdit != nil {
		c.callbacks.OnConfirmEdit(edited)
	}
	return true
}

// ToggleFavorite отправляет неизмененный снимок заметки
func (c *Card) ToggleFavorite() {
	if c.callbacks.OnFavorite != nil {
		c.callbacks.OnFavorite(c.note)
	}
}

// Delete отправляет только ID
func (c *Card) Delete() {
	if c.callbacks.OnDelete != nil {
		c.callbacks.OnDelete(c.note.ID)
	}
}

// TogglePicker открывает или закрывает палитру
func (c *Card) TogglePicker() { c.pickerOpen = !c.pickerOpen }

// PickerOpen сообщает, открыта ли палитра
func (c *Card) PickerOpen() bool { return c.pickerOpen }

// Palette возвращает цвета, доступные в палитре
func (c *Card) Palette() []string { return model.Palette() }

// PickColor выбирает цвет из открытой палитры и закрывает её.
// Повторный выбор текущего цвета заметки снимает цвет (отправляется model.NoColor).
func (c *Card) PickColor(color string) {
	if !c.pickerOpen {
		return
	}
	c.pickerOpen = false

	if color == c.note.Color {
		color = model.NoColor
	}
	if c.callbacks.OnColor != nil {
		c.callbacks.OnColor(color)
	}
}

// SetNote обновляет заметку новыми данными сверху.
// Буферы без несохраненных правок пересинхронизируются, правки пользователя сохраняются.
func (c *Card) SetNote(note model.Note) {
	if !c.Edited() {
		c.title = note.Title
		c.text = note.Text
	}
	c.note = note
}

// Reset отбрасывает несохраненные правки
func (c *Card) Reset() {
	c.title = c.note.Title
	c.text = c.note.Text
}
