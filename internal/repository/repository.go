package repository

import (
	"context"

	"notes-client/internal/model"
)

// NoteRepository интерфейс для работы с заметками в хранилище (удаленном API или в памяти)
type NoteRepository interface {
	// List возвращает список всех заметок
	List(ctx context.Context) ([]model.Note, error)

	// Search возвращает заметки, отфильтрованные по строке запроса
	Search(ctx context.Context, query string) ([]model.Note, error)

	// Create создает заметку из черновика и возвращает сохраненную заметку с ID и датой создания
	Create(ctx context.Context, draft model.Note) (model.Note, error)

	// Update применяет частичное обновление к заметке и возвращает обновленную заметку
	Update(ctx context.Context, id string, patch model.Patch) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id string) error
}
