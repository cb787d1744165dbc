package notes

import (
	"context"
	"strings"
	"sync"

	"notes-client/internal/model"
	"notes-client/internal/repository"
	svc "notes-client/internal/service"

	"go.uber.org/zap"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
	events         *EventService
	logger         *zap.Logger

	mu    sync.RWMutex
	notes []model.Note
	draft model.Note
	// lastToken - последний выданный токен запроса на изменение (растет монотонно),
	// applied - токен последнего примененного ответа для каждой заметки.
	// Ответ применяется, только если его токен больше примененного.
	lastToken uint64
	applied   map[string]uint64
}

// NewNoteService создает контроллер заметок поверх репозитория
func NewNoteService(noteRepository repository.NoteRepository, logger *zap.Logger) svc.NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		noteRepository: noteRepository,
		events:         NewEventService(),
		logger:         logger.Named("notes"),
		notes:          []model.Note{},
		draft:          model.NewDraft(),
		applied:        make(map[string]uint64),
	}
}

// Load загружает всю коллекцию. При ошибке коллекция не меняется.
func (s *service) Load(ctx context.Context) error {
	notes, err := s.noteRepository.List(ctx)
	if err != nil {
		return s.fail(OpLoad, err)
	}

	s.replaceAll(notes)
	return nil
}

// Search заменяет коллекцию результатом поиска.
// Запрос обрезается; пустой запрос означает полную перезагрузку.
func (s *service) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		notes, err := s.noteRepository.List(ctx)
		if err != nil {
			return s.fail(OpSearch, err)
		}
		s.replaceAll(notes)
		return nil
	}

	notes, err := s.noteRepository.Search(ctx, query)
	if err != nil {
		return s.fail(OpSearch, err)
	}

	s.replaceAll(notes)
	return nil
}

// AddNote валидирует черновик и создает заметку.
// Ошибка валидации возвращается до какого-либо запроса.
func (s *service) AddNote(ctx context.Context, draft model.Note) (model.Note, error) {
	if err := draft.ValidateDraft(); err != nil {
		return model.Note{}, err
	}

	created, err := s.noteRepository.Create(ctx, draft)
	if err != nil {
		return model.Note{}, s.fail(OpAdd, err)
	}

	s.mu.Lock()
	s.notes = append(s.notes, created)
	s.draft = model.NewDraft()
	s.mu.Unlock()

	s.events.Publish(model.Change{Kind: model.ChangeAdded, Note: created})
	return created, nil
}

// DeleteNote удаляет заметку и убирает её из коллекции, порядок остальных сохраняется
func (s *service) DeleteNote(ctx context.Context, id string) error {
	if err := s.noteRepository.Delete(ctx, id); err != nil {
		return s.fail(OpDelete, err)
	}

	var removed model.Note
	s.mu.Lock()
	kept := make([]model.Note, 0, len(s.notes))
	for _, note := range s.notes {
		if note.ID == id {
			removed = note
			continue
		}
		kept = append(kept, note)
	}
	s.notes = kept
	delete(s.applied, id)
	s.mu.Unlock()

	if removed.ID == "" {
		removed.ID = id
	}
	s.events.Publish(model.Change{Kind: model.ChangeDeleted, Note: removed})
	return nil
}

// ToggleFavorite отправляет инвертированный флаг избранного.
// Итоговое значение определяет ответ сервера.
func (s *service) ToggleFavorite(ctx context.Context, note model.Note) (model.Note, error) {
	return s.update(ctx, OpToggleFavorite, note.ID, model.FavoritePatch{IsFavorite: !note.IsFavorite})
}

// ConfirmEdit отправляет заголовок и текст заметки
func (s *service) ConfirmEdit(ctx context.Context, note model.Note) (model.Note, error) {
	return s.update(ctx, OpConfirmEdit, note.ID, model.ContentPatch{Title: note.Title, Text: note.Text})
}

// SetColor отправляет новый цвет
func (s *service) SetColor(ctx context.Context, id, color string) (model.Note, error) {
	return s.update(ctx, OpSetColor, id, model.ColorPatch{Color: color})
}

func (s *service) update(ctx context.Context, op Operation, id string, patch model.Patch) (model.Note, error) {
	token := s.nextToken()

	updated, err := s.noteRepository.Update(ctx, id, patch)
	if err != nil {
		return model.Note{}, s.fail(op, err)
	}

	s.mu.Lock()
	if token <= s.applied[id] {
		s.mu.Unlock()
		s.logger.Debug("discarding stale response",
			zap.String("op", string(op)),
			zap.String("id", id),
			zap.Uint64("token", token),
		)
		return updated, nil
	}
	replaced := false
	for i := range s.notes {
		if s.notes[i].ID == updated.ID {
			s.notes[i] = updated
			s.applied[id] = token
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if replaced {
		s.events.Publish(model.Change{Kind: model.ChangeUpdated, Note: updated})
	}
	return updated, nil
}

// Notes возвращает копию текущей коллекции
func (s *service) Notes() []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Partitioned делит текущую коллекцию на избранные и остальные
func (s *service) Partitioned() (favorites, others []model.Note) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Partition(s.notes)
}

func (s *service) Draft() model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

func (s *service) SetDraft(draft model.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
}

func (s *service) Subscribe() chan model.Change { return s.events.Subscribe() }

func (s *service) Unsubscribe(ch chan model.Change) { s.events.Unsubscribe(ch) }

func (s *service) replaceAll(notes []model.Note) {
	if notes == nil {
		notes = []model.Note{}
	}

	present := make(map[string]bool, len(notes))
	for _, note := range notes {
		present[note.ID] = true
	}

	s.mu.Lock()
	s.notes = notes
	for id := range s.applied {
		if !present[id] {
			delete(s.applied, id)
		}
	}
	s.mu.Unlock()

	s.events.Publish(model.Change{Kind: model.ChangeLoaded})
}

func (s *service) nextToken() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastToken++
	return s.lastToken
}

func (s *service) fail(op Operation, err error) error {
	opErr := newOperationError(op, err)
	s.logger.Error("operation failed",
		zap.String("op", string(op)),
		zap.String("message", opErr.Message),
		zap.String("detail", opErr.Detail()),
		zap.Error(err),
	)
	return opErr
}
