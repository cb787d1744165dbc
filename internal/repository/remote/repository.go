package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notes-client/internal/model"
	"notes-client/internal/repository"

	"go.uber.org/zap"
)

// ErrUnexpectedStatus возвращается, когда API ответил не 2xx
var ErrUnexpectedStatus = errors.New("unexpected response status")

const notesPath = "/notes"

var _ repository.NoteRepository = (*repo)(nil)

type repo struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// Option настраивает удаленный репозиторий
type Option func(*repo)

// WithHTTPClient подменяет HTTP клиент (например, в тестах)
func WithHTTPClient(client *http.Client) Option {
	return func(r *repo) { r.client = client }
}

// WithLogger задает логгер
func WithLogger(logger *zap.Logger) Option {
	return func(r *repo) { r.logger = logger }
}

// NewRepository создает репозиторий поверх HTTP API заметок.
// baseURL - адрес API без завершающего слэша, например http://localhost:3333
func NewRepository(baseURL string, timeout time.Duration, opts ...Option) (repository.NoteRepository, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base url %q", baseURL)
	}

	r := &repo{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// List выполняет GET /notes
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := r.do(ctx, http.MethodGet, notesPath, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Search выполняет GET /notes/{query}
func (r *repo) Search(ctx context.Context, query string) ([]model.Note, error) {
	var notes []model.Note
	if err := r.do(ctx, http.MethodGet, notesPath+"/"+url.PathEscape(query), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// createRequest - тело POST /notes, ID и дата создания не отправляются
type createRequest struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	IsFavorite bool   `json:"isFavorite"`
	Color      string `json:"color"`
}

// Create выполняет POST /notes
func (r *repo) Create(ctx context.Context, draft model.Note) (model.Note, error) {
	body := createRequest{
		Title:      draft.Title,
		Text:       draft.Text,
		IsFavorite: draft.IsFavorite,
		Color:      draft.Color,
	}

	var note model.Note
	if err := r.do(ctx, http.MethodPost, notesPath, body, &note); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

// Update выполняет PATCH /notes/{id} с одним из видов патча
func (r *repo) Update(ctx context.Context, id string, patch model.Patch) (model.Note, error) {
	var note model.Note
	if err := r.do(ctx, http.MethodPatch, notesPath+"/"+url.PathEscape(id), patch, &note); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

// Delete выполняет DELETE /notes/{id}, тело ответа игнорируется
func (r *repo) Delete(ctx context.Context, id string) error {
	return r.do(ctx, http.MethodDelete, notesPath+"/"+url.PathEscape(id), nil, nil)
}

// do отправляет запрос и декодирует JSON ответ в out (если out != nil)
func (r *repo) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	r.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Тело читаем частично только для диагностики
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %w: %d %s", method, path, ErrUnexpectedStatus,
			resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
