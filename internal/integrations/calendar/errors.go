package calendar

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrAuth учетные данные отклонены; тик прерывается
	ErrAuth = errors.New("calendar: authentication failed")

	// ErrNotFound событие или календарь не найдены
	ErrNotFound = errors.New("calendar: not found")

	// ErrRateLimited превышена квота внешнего API
	ErrRateLimited = errors.New("calendar: rate limited")

	// ErrUnavailable сетевая ошибка, таймаут или 5xx
	ErrUnavailable = errors.New("calendar: unavailable")
)

// Outcome тип результата вызова внешнего календаря
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeAuth        Outcome = "auth"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeRateLimited Outcome = "rate_limited"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeError       Outcome = "error"
)

// Classify сводит ошибку клиента к Outcome
func Classify(err error) Outcome {
	var netErr net.Error
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrAuth):
		return OutcomeAuth
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrRateLimited):
		return OutcomeRateLimited
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}
