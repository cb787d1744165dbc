package swagger

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed notes.swagger.json
var notesSpec []byte

// Mount добавляет в роутер описание API заметок.
//
// Создает следующие маршруты:
// - GET /swagger.json - описание API в формате Swagger 2.0
// - GET /swagger - редирект на /swagger.json
func Mount(r chi.Router) {
	r.Get("/swagger.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(notesSpec)
	})

	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger.json", http.StatusMovedPermanently)
	})
}
