package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"notes-client/internal/model"
	"notes-client/internal/repository"
	"notes-client/internal/repository/memory"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// errInvalidPatch - тело PATCH не содержит ровно один вид изменения
var errInvalidPatch = errors.New("patch must contain exactly one of {isFavorite}, {title, text}, {color}")

// Handler реализует HTTP API заметок поверх репозитория
type Handler struct {
	noteRepository repository.NoteRepository
	logger         *zap.Logger
}

// NewHandler создает новый экземпляр HTTP хэндлера
func NewHandler(noteRepository repository.NoteRepository, logger *zap.Logger) *Handler {
	return &Handler{
		noteRepository: noteRepository,
		logger:         logger,
	}
}

// ListNotes GET /notes
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteRepository.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// SearchNotes GET /notes/{query}
func (h *Handler) SearchNotes(w http.ResponseWriter, r *http.Request) {
	// chi маршрутизирует по RawPath, если он есть, и тогда параметр остается экранированным
	query := chi.URLParam(r, "query")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(query)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		query = unescaped
	}

	notes, err := h.noteRepository.Search(r.Context(), query)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

type createNoteRequest struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	IsFavorite bool   `json:"isFavorite"`
	Color      string `json:"color"`
}

// CreateNote POST /notes
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	note, err := h.noteRepository.Create(r.Context(), model.Note{
		Title:      req.Title,
		Text:       req.Text,
		IsFavorite: req.IsFavorite,
		Color:      req.Color,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// updateNoteRequest - все поля опциональны, допустим ровно один вид патча
type updateNoteRequest struct {
	IsFavorite *bool   `json:"isFavorite"`
	Title      *string `json:"title"`
	Text       *string `json:"text"`
	Color      *string `json:"color"`
}

func (req updateNoteRequest) patch() (model.Patch, error) {
	favorite := req.IsFavorite != nil
	content := req.Title != nil || req.Text != nil
	color := req.Color != nil

	switch {
	case favorite && !content && !color:
		return model.FavoritePatch{IsFavorite: *req.IsFavorite}, nil
	case content && !favorite && !color:
		if req.Title == nil || req.Text == nil {
			return nil, errInvalidPatch
		}
		return model.ContentPatch{Title: *req.Title, Text: *req.Text}, nil
	case color && !favorite && !content:
		return model.ColorPatch{Color: *req.Color}, nil
	default:
		return nil, errInvalidPatch
	}
}

// UpdateNote PATCH /notes/{id}
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	patch, err := req.patch()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	note, err := h.noteRepository.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote DELETE /notes/{id}
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.noteRepository.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError конвертирует ошибки репозитория в HTTP статусы
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, memory.ErrNoteNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	h.logger.Error("repository error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
