package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notes-client/internal/model"
	"notes-client/internal/repository"
	"notes-client/internal/repository/memory"
	"notes-client/internal/service/notes"
)

var (
	enter  = tea.KeyMsg{Type: tea.KeyEnter}
	tab    = tea.KeyMsg{Type: tea.KeyTab}
	escape = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlF  = tea.KeyMsg{Type: tea.KeyCtrlF}
	ctrlS  = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// failingRepository - репозиторий, у которого не работает загрузка
type failingRepository struct {
	repository.NoteRepository
}

func (failingRepository) List(ctx context.Context) ([]model.Note, error) {
	return nil, errors.New("connection refused")
}

// exec синхронно выполняет команды и передает результаты операций обратно в модель.
// Прочие сообщения (например tea.Quit) игнорируются.
func exec(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			exec(m, c)
		}
	case resultMsg:
		_, next := m.Update(msg)
		exec(m, next)
	}
}

func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		_, cmd := m.Update(k)
		exec(m, cmd)
	}
}

func newTestModel(t *testing.T, repo repository.NoteRepository) *Model {
	t.Helper()
	m := New(context.Background(), notes.NewNoteService(repo, zap.NewNop()), zap.NewNop())
	exec(m, m.run(notes.OpLoad, m.service.Load))
	return m
}

func seed(t *testing.T, repo repository.NoteRepository, title, text string, favorite bool) model.Note {
	t.Helper()
	ctx := context.Background()
	note, err := repo.Create(ctx, model.Note{Title: title, Text: text, Color: model.NoColor})
	require.NoError(t, err)
	if favorite {
		note, err = repo.Update(ctx, note.ID, model.FavoritePatch{IsFavorite: true})
		require.NoError(t, err)
	}
	return note
}

func focusCardsSection(m *Model) {
	for m.focus != focusCards {
		press(m, tab)
	}
}

func TestModel_LoadRendersSections(t *testing.T) {
	repo := memory.NewRepository()
	other := seed(t, repo, "Work", "Finish report", false)
	favorite := seed(t, repo, "Shopping", "Buy milk", true)

	m := newTestModel(t, repo)

	assert.Equal(t, []string{favorite.ID, other.ID}, m.order)
	assert.Equal(t, 1, m.favCount)

	view := m.View()
	assert.Contains(t, view, "Favorites")
	assert.Contains(t, view, "Others")
	assert.Contains(t, view, "Shopping")
	assert.Contains(t, view, "Finish report")
}

func TestModel_EmptyCollectionHasNoSections(t *testing.T) {
	m := newTestModel(t, memory.NewRepository())

	view := m.View()
	assert.NotContains(t, view, "Favorites")
	assert.NotContains(t, view, "Others")
}

func TestModel_AddNoteFromForm(t *testing.T) {
	repo := memory.NewRepository()
	m := newTestModel(t, repo)

	press(m, tab)
	require.Equal(t, focusDraftTitle, m.focus)
	press(m, runes("Shopping"), tab, runes("Buy milk"), ctrlF, enter)

	assert.Empty(t, m.alert)
	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Shopping", all[0].Title)
	assert.Equal(t, "Buy milk", all[0].Text)
	assert.True(t, all[0].IsFavorite)

	// Черновик сброшен вместе с формой
	assert.Empty(t, m.draftTitle.Value())
	assert.Empty(t, m.draftText.Value())
	assert.Equal(t, model.NewDraft(), m.service.Draft())
	assert.Equal(t, []string{all[0].ID}, m.order)
}

func TestModel_InvalidDraftShowsBlockingAlert(t *testing.T) {
	repo := memory.NewRepository()
	m := newTestModel(t, repo)

	press(m, tab, runes("ab"), tab, runes("Buy milk"), enter)
	assert.Equal(t, model.ErrTitleTooShort.Error(), m.alert)
	assert.Contains(t, m.View(), model.ErrTitleTooShort.Error())

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	// Пока сообщение открыто, остальной ввод игнорируется
	press(m, tab, runes("zzz"))
	assert.Equal(t, focusDraftText, m.focus)
	assert.Equal(t, "Buy milk", m.draftText.Value())

	press(m, enter)
	assert.Empty(t, m.alert)
	assert.Equal(t, "ab", m.draftTitle.Value(), "form keeps the draft after a rejected add")
}

func TestModel_FailedLoadShowsMessage(t *testing.T) {
	m := newTestModel(t, failingRepository{})

	assert.Equal(t, notes.MsgFetchFailed, m.alert)
	assert.Empty(t, m.order)

	press(m, escape)
	assert.Empty(t, m.alert)
}

func TestModel_Search(t *testing.T) {
	repo := memory.NewRepository()
	seed(t, repo, "Shopping", "Buy milk", false)
	seed(t, repo, "Work", "Finish report", false)
	m := newTestModel(t, repo)
	require.Len(t, m.order, 2)

	press(m, runes("milk"), enter)
	require.Len(t, m.order, 1)
	assert.Equal(t, "Shopping", m.cards[m.order[0]].Note().Title)

	// Пустой запрос возвращает всю коллекцию
	m.search.SetValue("   ")
	press(m, enter)
	assert.Len(t, m.order, 2)
}

func TestModel_CardFavoriteColorDelete(t *testing.T) {
	repo := memory.NewRepository()
	note := seed(t, repo, "Shopping", "Buy milk", false)
	m := newTestModel(t, repo)
	focusCardsSection(m)

	press(m, runes("f"))
	assert.Equal(t, 1, m.favCount)
	assert.True(t, m.cards[note.ID].Note().IsFavorite)

	press(m, runes("c"))
	require.True(t, m.cards[note.ID].PickerOpen())
	assert.Contains(t, m.View(), "[]")

	palette := model.Palette()
	press(m, runes("l"), enter)
	assert.False(t, m.cards[note.ID].PickerOpen())
	assert.Equal(t, palette[1], m.cards[note.ID].Note().Color)

	// Повторный выбор того же цвета снимает цвет
	press(m, runes("c"), enter)
	assert.Equal(t, model.NoColor, m.cards[note.ID].Note().Color)

	press(m, runes("d"))
	assert.Empty(t, m.order)
	assert.Empty(t, m.cards)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestModel_PickerEscapeKeepsColor(t *testing.T) {
	repo := memory.NewRepository()
	note := seed(t, repo, "Shopping", "Buy milk", false)
	m := newTestModel(t, repo)
	focusCardsSection(m)

	press(m, runes("c"), runes("l"), escape)
	assert.False(t, m.cards[note.ID].PickerOpen())
	assert.Equal(t, model.NoColor, m.cards[note.ID].Note().Color)
}

func TestModel_PickerStartsAtCurrentColor(t *testing.T) {
	repo := memory.NewRepository()
	note := seed(t, repo, "Shopping", "Buy milk", false)
	_, err := repo.Update(context.Background(), note.ID, model.ColorPatch{Color: "#f99494"})
	require.NoError(t, err)
	m := newTestModel(t, repo)
	focusCardsSection(m)

	// Позиция ищется без учета регистра
	press(m, runes("c"))
	assert.Equal(t, 4, m.swatch)
	assert.True(t, m.cards[note.ID].PickerOpen())
}

func TestModel_EditAndConfirm(t *testing.T) {
	repo := memory.NewRepository()
	note := seed(t, repo, "Shopping", "Buy milk", false)
	m := newTestModel(t, repo)
	focusCardsSection(m)

	// Без правок подтверждать нечего
	press(m, runes("s"))
	card := m.cards[note.ID]
	assert.False(t, card.CanConfirm())

	press(m, runes("e"), runes(" list"), escape)
	assert.Equal(t, "Shopping list", card.Title())
	assert.True(t, card.CanConfirm())
	assert.Equal(t, "Shopping", card.Note().Title, "buffer edits stay local until confirmed")

	press(m, runes("t"), runes(" and eggs"), ctrlS)
	assert.Equal(t, editNone, m.editing)

	updated, err := repo.Search(context.Background(), "eggs")
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "Shopping list", updated[0].Title)
	assert.Equal(t, "Buy milk and eggs", updated[0].Text)

	assert.Equal(t, "Shopping list", card.Note().Title)
	assert.False(t, card.CanConfirm())
}

func TestModel_UndoDiscardsEdits(t *testing.T) {
	repo := memory.NewRepository()
	note := seed(t, repo, "Shopping", "Buy milk", false)
	m := newTestModel(t, repo)
	focusCardsSection(m)

	press(m, runes("e"), runes("!!!"), enter, runes("u"))
	assert.Equal(t, "Shopping", m.cards[note.ID].Title())
	assert.False(t, m.cards[note.ID].CanConfirm())
}

func TestModel_SelectionMoves(t *testing.T) {
	repo := memory.NewRepository()
	seed(t, repo, "First", "one one", false)
	seed(t, repo, "Second", "two two", false)
	m := newTestModel(t, repo)
	focusCardsSection(m)

	press(m, runes("j"), runes("j"))
	assert.Equal(t, 1, m.selected)
	press(m, runes("k"), runes("k"))
	assert.Equal(t, 0, m.selected)

	press(m, runes("j"), runes("d"))
	assert.Equal(t, 0, m.selected)
	assert.Equal(t, "First", m.selectedCard().Note().Title)
}

func TestModel_ChangeEventSyncsCards(t *testing.T) {
	repo := memory.NewRepository()
	service := notes.NewNoteService(repo, zap.NewNop())
	m := New(context.Background(), service, zap.NewNop())

	m.changes = service.Subscribe()
	defer m.Close()

	_, err := service.AddNote(context.Background(), model.Note{Title: "Shopping", Text: "Buy milk", Color: model.NoColor})
	require.NoError(t, err)

	msg := waitForChange(m.changes)()
	change, ok := msg.(changeMsg)
	require.True(t, ok)
	assert.Equal(t, model.ChangeAdded, change.change.Kind)

	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd, "model keeps listening for changes")
	assert.Len(t, m.order, 1)
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t, memory.NewRepository())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
