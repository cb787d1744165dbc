package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"notes-client/internal/model"
	"notes-client/internal/repository"

	"github.com/google/uuid"
)

// ErrNoteNotFound возвращается, когда заметка не найдена
var ErrNoteNotFound = errors.New("note not found")

var _ repository.NoteRepository = (*repo)(nil)

type repo struct {
	mu    sync.RWMutex
	notes map[string]model.Note
	order []string // ID в порядке создания
	now   func() time.Time
}

// NewRepository создает новый экземпляр in-memory репозитория на основе map
func NewRepository() repository.NoteRepository {
	return &repo{
		notes: make(map[string]model.Note),
		now:   time.Now,
	}
}

// Create сохраняет черновик и возвращает заметку с ID и датой создания.
// ID и дата из черновика игнорируются.
func (r *repo) Create(ctx context.Context, draft model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note := draft
	note.ID = uuid.New().String()
	note.CreatedAt = r.now().UTC().Format(time.RFC3339)
	if note.Color == "" {
		note.Color = model.NoColor
	}

	r.notes[note.ID] = note
	r.order = append(r.order, note.ID)

	return note, nil
}

// List возвращает список всех заметок в порядке создания
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(model.Note) bool { return true }), nil
}

// Search ищет подстроку в заголовке и тексте без учета регистра
func (r *repo) Search(ctx context.Context, query string) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	return r.filter(func(n model.Note) bool {
		return strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Text), q)
	}), nil
}

// Update применяет патч к существующей заметке
func (r *repo) Update(ctx context.Context, id string, patch model.Patch) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, exists := r.notes[id]
	if !exists {
		return model.Note{}, ErrNoteNotFound
	}

	patch.Apply(&note)
	r.notes[id] = note

	return note, nil
}

// Delete удаляет заметку по ID
func (r *repo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return ErrNoteNotFound
	}

	delete(r.notes, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *repo) filter(keep func(model.Note) bool) []model.Note {
	notes := make([]model.Note, 0, len(r.order))
	for _, id := range r.order {
		if note := r.notes[id]; keep(note) {
			notes = append(notes, note)
		}
	}
	return notes
}
