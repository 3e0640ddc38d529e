package reconcile

import "time"

// Options ограничения времени тика
type Options struct {
	CallTimeout     time.Duration // один вызов внешнего API
	ResourceTimeout time.Duration // все брони одного ресурса
}

// Действия над событием внешнего календаря
const (
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
	actionMark   = "mark" // отмена без внешнего события: только статус
)

// itemResult что произошло с одной бронью
type itemResult struct {
	action  string
	created bool
	updated bool
	deleted bool

	// ссылка после обработки; setRef = ссылку нужно сохранить
	ref        *string
	calendarID *string
	setRef     bool
}
