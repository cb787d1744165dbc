package model

// ChangeKind - вид изменения коллекции заметок
type ChangeKind int

const (
	ChangeLoaded ChangeKind = iota + 1
	ChangeAdded
	ChangeUpdated
	ChangeDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeLoaded:
		return "loaded"
	case ChangeAdded:
		return "added"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Change - событие об изменении коллекции. Для ChangeLoaded Note пустая.
type Change struct {
	Kind ChangeKind
	Note Note
}
