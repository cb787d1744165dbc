package model

// Patch - частичное обновление заметки. За один запрос отправляется ровно один вид патча.
type Patch interface {
	// Apply применяет патч к заметке
	Apply(note *Note)
	isPatch()
}

// FavoritePatch меняет флаг избранного
type FavoritePatch struct {
	IsFavorite bool `json:"isFavorite"`
}

// ContentPatch меняет заголовок и текст вместе
type ContentPatch struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ColorPatch меняет цвет
type ColorPatch struct {
	Color string `json:"color"`
}

func (p FavoritePatch) Apply(note *Note) { note.IsFavorite = p.IsFavorite }

func (p ContentPatch) Apply(note *Note) {
	note.Title = p.Title
	note.Text = p.Text
}

func (p ColorPatch) Apply(note *Note) { note.Color = p.Color }

func (FavoritePatch) isPatch() {}
func (ContentPatch) isPatch()  {}
func (ColorPatch) isPatch()    {}
