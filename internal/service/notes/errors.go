package notes

import "fmt"

// Operation - операция контроллера, которая обращается к API
type Operation string

const (
	OpLoad           Operation = "load"
	OpSearch         Operation = "search"
	OpAdd            Operation = "add"
	OpDelete         Operation = "delete"
	OpToggleFavorite Operation = "toggle_favorite"
	OpConfirmEdit    Operation = "confirm_edit"
	OpSetColor       Operation = "set_color"
)

// Сообщения для пользователя, фиксированные для каждой операции
const (
	MsgFetchFailed  = "Failed to fetch notes."
	MsgAddFailed    = "Failed to add note."
	MsgDeleteFailed = "Failed to remove note."
	MsgUpdateFailed = "Failed to update note."
	MsgColorFailed  = "Failed to change note color."
)

var messages = map[Operation]string{
	OpLoad:           MsgFetchFailed,
	OpSearch:         MsgFetchFailed,
	OpAdd:            MsgAddFailed,
	OpDelete:         MsgDeleteFailed,
	OpToggleFavorite: MsgUpdateFailed,
	OpConfirmEdit:    MsgUpdateFailed,
	OpSetColor:       MsgColorFailed,
}

// OperationError - неудачный запрос к API. Error() возвращает сообщение для пользователя,
// причина доступна через errors.Unwrap.
type OperationError struct {
	Op      Operation
	Message string
	Err     error
}

func newOperationError(op Operation, err error) *OperationError {
	return &OperationError{Op: op, Message: messages[op], Err: err}
}

func (e *OperationError) Error() string { return e.Message }

func (e *OperationError) Unwrap() error { return e.Err }

// Detail возвращает сообщение вместе с причиной, для логов
func (e *OperationError) Detail() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}
