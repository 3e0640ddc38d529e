package scheduler

import "errors"

var (
	// ErrInvalidSchedule некорректное cron-выражение
	ErrInvalidSchedule = errors.New("scheduler: invalid schedule")

	// ErrStopped планировщик уже остановлен
	ErrStopped = errors.New("scheduler: stopped")
)
