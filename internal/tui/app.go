// Package tui - терминальная главная страница заметок на bubbletea.
// Все сетевые вызовы выполняются в tea.Cmd, результаты возвращаются сообщениями.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"notes-client/internal/model"
	"notes-client/internal/notecard"
	svc "notes-client/internal/service"
	"notes-client/internal/service/notes"
)

type focus int

const (
	focusSearch focus = iota
	focusDraftTitle
	focusDraftText
	focusCards
	focusCount
)

type editField int

const (
	editNone editField = iota
	editTitle
	editText
)

// resultMsg - завершение операции контроллера
type resultMsg struct {
	op  notes.Operation
	err error
}

// changeMsg - событие из подписки на контроллер
type changeMsg struct {
	change model.Change
	ok     bool
}

// Model - состояние главной страницы
type Model struct {
	ctx     context.Context
	service svc.NoteService
	logger  *zap.Logger
	changes chan model.Change

	search     textinput.Model
	draftTitle textinput.Model
	draftText  textinput.Model
	editInput  textinput.Model

	focus    focus
	editing  editField
	cards    map[string]*notecard.Card
	order    []string
	favCount int
	selected int
	swatch   int

	pending []tea.Cmd
	alert   string
	width   int
}

var _ tea.Model = (*Model)(nil)

// New создает модель поверх контроллера
func New(ctx context.Context, service svc.NoteService, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Model{
		ctx:        ctx,
		service:    service,
		logger:     logger.Named("tui"),
		search:     newInput("Search notes...", 100),
		draftTitle: newInput("Title", 100),
		draftText:  newInput("Take a note...", 1000),
		editInput:  newInput("", 1000),
		cards:      make(map[string]*notecard.Card),
		width:      100,
	}
	m.search.Focus()
	m.resetDraftInputs()
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.Width = cardWidth
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init подписывается на изменения коллекции и запускает первую загрузку
func (m *Model) Init() tea.Cmd {
	m.changes = m.service.Subscribe()
	return tea.Batch(
		waitForChange(m.changes),
		m.run(notes.OpLoad, m.service.Load),
	)
}

// Close отписывается от контроллера
func (m *Model) Close() {
	if m.changes != nil {
		m.service.Unsubscribe(m.changes)
		m.changes = nil
	}
}

func waitForChange(ch chan model.Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-ch
		return changeMsg{change: change, ok: ok}
	}
}

// run выполняет операцию контроллера вне цикла отрисовки
func (m *Model) run(op notes.Operation, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{op: op, err: fn(m.ctx)}
	}
}

func (m *Model) enqueue(cmd tea.Cmd) {
	m.pending = append(m.pending, cmd)
}

func (m *Model) flush(cmds ...tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.pending...)
	m.pending = nil
	return tea.Batch(cmds...)
}

// Update обрабатывает сообщения bubbletea
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case changeMsg:
		if !msg.ok {
			return m, nil
		}
		m.logger.Debug("collection changed",
			zap.Stringer("kind", msg.change.Kind),
			zap.String("id", msg.change.Note.ID),
		)
		m.syncCards()
		return m, waitForChange(m.changes)

	case resultMsg:
		return m, m.handleResult(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleResult(msg resultMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("operation failed", zap.String("op", string(msg.op)), zap.Error(msg.err))
		m.alert = msg.err.Error()
		return nil
	}

	if msg.op == notes.OpAdd {
		m.resetDraftInputs()
	}
	m.syncCards()
	return nil
}

// syncCards приводит карточки к текущей коллекции контроллера.
// Существующие карточки сохраняют локальные правки.
func (m *Model) syncCards() {
	favorites, others := m.service.Partitioned()

	all := make([]model.Note, 0, len(favorites)+len(others))
	all = append(all, favorites...)
	all = append(all, others...)

	seen := make(map[string]bool, len(all))
	order := make([]string, 0, len(all))
	for _, note := range all {
		seen[note.ID] = true
		order = append(order, note.ID)
		if card, ok := m.cards[note.ID]; ok {
			card.SetNote(note)
			continue
		}
		m.cards[note.ID] = notecard.New(note, m.callbacks(note.ID))
	}

	for id := range m.cards {
		if !seen[id] {
			delete(m.cards, id)
		}
	}

	var selectedID string
	if m.selected < len(m.order) {
		selectedID = m.order[m.selected]
	}
	m.order = order
	m.favCount = len(favorites)

	// Выбор следует за заметкой; если её больше нет, остается на той же позиции
	found := false
	for i, id := range order {
		if id == selectedID {
			m.selected = i
			found = true
			break
		}
	}
	if !found && m.selected >= len(order) {
		m.selected = max(len(order)-1, 0)
	}
	if m.selectedCard() == nil && m.editing != editNone {
		m.stopEditing()
	}
}

func (m *Model) callbacks(id string) notecard.Callbacks {
	return notecard.Callbacks{
		OnFavorite: func(note model.Note) {
			m.enqueue(m.run(notes.OpToggleFavorite, func(ctx context.Context) error {
				_, err := m.service.ToggleFavorite(ctx, note)
				return err
			}))
		},
		OnConfirmEdit: func(note model.Note) {
			m.enqueue(m.run(notes.OpConfirmEdit, func(ctx context.Context) error {
				_, err := m.service.ConfirmEdit(ctx, note)
				return err
			}))
		},
		OnDelete: func(id string) {
			m.enqueue(m.run(notes.OpDelete, func(ctx context.Context) error {
				return m.service.DeleteNote(ctx, id)
			}))
		},
		OnColor: func(color string) {
			m.enqueue(m.run(notes.OpSetColor, func(ctx context.Context) error {
				_, err := m.service.SetColor(ctx, id, color)
				return err
			}))
		},
	}
}

func (m *Model) selectedCard() *notecard.Card {
	if m.selected < 0 || m.selected >= len(m.order) {
		return nil
	}
	return m.cards[m.order[m.selected]]
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.Close()
		return m, tea.Quit
	}

	// Модальное сообщение блокирует ввод до закрытия
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			m.alert = ""
		}
		return m, nil
	}

	if m.editing != editNone {
		return m, m.handleEditKey(msg)
	}

	switch msg.String() {
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	}

	switch m.focus {
	case focusSearch:
		return m, m.handleSearchKey(msg)
	case focusDraftTitle, focusDraftText:
		return m, m.handleDraftKey(msg)
	default:
		return m.handleCardKey(msg)
	}
}

func (m *Model) setFocus(f focus) {
	m.search.Blur()
	m.draftTitle.Blur()
	m.draftText.Blur()

	m.focus = f
	switch f {
	case focusSearch:
		m.search.Focus()
	case focusDraftTitle:
		m.draftTitle.Focus()
	case focusDraftText:
		m.draftText.Focus()
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter {
		query := m.search.Value()
		return m.run(notes.OpSearch, func(ctx context.Context) error {
			return m.service.Search(ctx, query)
		})
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *Model) handleDraftKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "ctrl+s":
		return m.addNote()
	case "ctrl+f":
		draft := m.service.Draft()
		draft.IsFavorite = !draft.IsFavorite
		m.service.SetDraft(draft)
		return nil
	}

	var cmd tea.Cmd
	if m.focus == focusDraftTitle {
		m.draftTitle, cmd = m.draftTitle.Update(msg)
	} else {
		m.draftText, cmd = m.draftText.Update(msg)
	}

	draft := m.service.Draft()
	draft.Title = m.draftTitle.Value()
	draft.Text = m.draftText.Value()
	m.service.SetDraft(draft)
	return cmd
}

// addNote валидирует черновик на месте, чтобы не делать лишний запрос
func (m *Model) addNote() tea.Cmd {
	draft := m.service.Draft()
	if err := draft.ValidateDraft(); err != nil {
		m.alert = err.Error()
		return nil
	}

	return m.run(notes.OpAdd, func(ctx context.Context) error {
		_, err := m.service.AddNote(ctx, draft)
		return err
	})
}

func (m *Model) resetDraftInputs() {
	draft := m.service.Draft()
	m.draftTitle.SetValue(draft.Title)
	m.draftText.SetValue(draft.Text)
}

func (m *Model) handleCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	card := m.selectedCard()

	if card != nil && card.PickerOpen() {
		palette := card.Palette()
		switch msg.String() {
		case "left", "h":
			m.swatch = (m.swatch + len(palette) - 1) % len(palette)
		case "right", "l":
			m.swatch = (m.swatch + 1) % len(palette)
		case "enter":
			card.PickColor(palette[m.swatch])
		case "esc", "c":
			card.TogglePicker()
		}
		return m, m.flush()
	}

	switch msg.String() {
	case "q":
		m.Close()
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.order)-1 {
			m.selected++
		}
	}

	if card == nil {
		return m, nil
	}

	switch msg.String() {
	case "f":
		card.ToggleFavorite()
	case "d", "x":
		card.Delete()
	case "c":
		// Палитра открывается на текущем цвете заметки
		m.swatch = max(model.PaletteIndex(card.Note().Color), 0)
		card.TogglePicker()
	case "e", "enter":
		m.startEditing(card, editTitle)
	case "t":
		m.startEditing(card, editText)
	case "s":
		card.ConfirmEdit()
	case "u":
		card.Reset()
	}

	return m, m.flush()
}

func (m *Model) startEditing(card *notecard.Card, field editField) {
	m.editing = field
	if field == editTitle {
		m.editInput.SetValue(card.Title())
	} else {
		m.editInput.SetValue(card.Text())
	}
	m.editInput.CursorEnd()
	m.editInput.Focus()
}

func (m *Model) stopEditing() {
	m.editing = editNone
	m.editInput.Blur()
}

// handleEditKey - ввод в буферы выбранной карточки
func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	card := m.selectedCard()
	if card == nil {
		m.stopEditing()
		return nil
	}

	switch msg.String() {
	case "esc", "enter":
		m.stopEditing()
		return nil
	case "tab":
		if m.editing == editTitle {
			m.startEditing(card, editText)
		} else {
			m.startEditing(card, editTitle)
		}
		return nil
	case "ctrl+s":
		m.stopEditing()
		card.ConfirmEdit()
		return m.flush()
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	if m.editing == editTitle {
		card.EditTitle(m.editInput.Value())
	} else {
		card.EditText(m.editInput.Value())
	}
	return cmd
}
