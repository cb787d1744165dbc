package service

import (
	"context"

	"notes-client/internal/model"
)

// NoteService - контроллер главной страницы: владеет коллекцией заметок,
// синхронизирует её с API и является единственным, кто её меняет
type NoteService interface {
	// Load загружает всю коллекцию
	Load(ctx context.Context) error

	// Search заменяет коллекцию результатом поиска (пустой запрос - полная перезагрузка)
	Search(ctx context.Context, query string) error

	// AddNote валидирует черновик, создает заметку и сбрасывает черновик
	AddNote(ctx context.Context, draft model.Note) (model.Note, error)

	// DeleteNote удаляет заметку по ID
	DeleteNote(ctx context.Context, id string) error

	// ToggleFavorite инвертирует флаг избранного
	ToggleFavorite(ctx context.Context, note model.Note) (model.Note, error)

	// ConfirmEdit сохраняет заголовок и текст
	ConfirmEdit(ctx context.Context, note model.Note) (model.Note, error)

	// SetColor меняет цвет заметки
	SetColor(ctx context.Context, id, color string) (model.Note, error)

	// Notes возвращает копию текущей коллекции
	Notes() []model.Note

	// Partitioned возвращает избранные и остальные заметки текущей коллекции
	Partitioned() (favorites, others []model.Note)

	// Draft возвращает текущий черновик новой заметки
	Draft() model.Note

	// SetDraft заменяет черновик (форма новой заметки)
	SetDraft(draft model.Note)

	// Subscribe возвращает канал событий об изменениях коллекции
	Subscribe() chan model.Change

	// Unsubscribe отписывает и закрывает канал
	Unsubscribe(ch chan model.Change)
}
