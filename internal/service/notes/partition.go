package notes

import "notes-client/internal/model"

// Partition делит заметки на избранные и остальные.
// Относительный порядок внутри каждой группы совпадает с исходным (стабильное разбиение).
func Partition(notes []model.Note) (favorites, others []model.Note) {
	favorites = []model.Note{}
	others = []model.Note{}
	for _, note := range notes {
		if note.IsFavorite {
			favorites = append(favorites, note)
		} else {
			others = append(others, note)
		}
	}
	return favorites, others
}
