package booking

// Класс ошибки движка. Все ошибки невосстановимыми не являются:
// вызывающая сторона получает конкретную причину и корректирует запрос.
type ErrorKind int

const (
	// Отсутствующее или некорректное поле запроса.
	KindValidation ErrorKind = iota
	// Слот/вместимость заняты, включая поздний отказ по констрейнту БД.
	KindConflict
	// Вызывающий не lead команды, не владелец брони, не админ.
	KindForbidden
	// Неизвестная команда/комната/слот/бронь.
	KindNotFound
)

// Error — типизированный исход движка с человекочитаемой причиной.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func NewValidationError(reason string) *Error {
	return &Error{Kind: KindValidation, Reason: reason}
}

func NewConflictError(reason string) *Error {
	return &Error{Kind: KindConflict, Reason: reason}
}

func NewForbiddenError(reason string) *Error {
	return &Error{Kind: KindForbidden, Reason: reason}
}

func NewNotFoundError(reason string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason}
}

// KindOf возвращает класс ошибки и признак того, что это ошибка движка.
func KindOf(err error) (ErrorKind, bool) {
	if e, ok := err.(*Error); ok {
		return e.Kind, true
	}
	return 0, false
}
