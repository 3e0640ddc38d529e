package reconcile

import "errors"

var (
	// ErrInternal журнал тика не удалось сохранить
	ErrInternal = errors.New("reconcile: internal error")
)
