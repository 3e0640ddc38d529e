package google

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/m04kA/SMC-BayBookingService/internal/integrations/calendar"
)

var (
	// ErrCredentials файл учетных данных не читается или некорректен
	ErrCredentials = errors.New("google calendar: invalid credentials")

	// errConflict событие с таким id уже существует
	errConflict = errors.New("google calendar: event already exists")
)

var rateLimitReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"quotaExceeded":         true,
}

// mapError переводит ошибки googleapi/oauth2 в ошибки calendar
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: %s: %v", calendar.ErrAuth, op, err)
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("google calendar: %s: %w", op, err)
	}

	var kind error
	switch code := apiErr.Code; {
	case code == http.StatusUnauthorized:
		kind = calendar.ErrAuth
	case code == http.StatusForbidden && hasRateLimitReason(apiErr):
		kind = calendar.ErrRateLimited
	case code == http.StatusForbidden:
		kind = calendar.ErrAuth
	case code == http.StatusNotFound || code == http.StatusGone:
		kind = calendar.ErrNotFound
	case code == http.StatusConflict:
		kind = errConflict
	case code == http.StatusTooManyRequests:
		kind = calendar.ErrRateLimited
	case code >= http.StatusInternalServerError:
		kind = calendar.ErrUnavailable
	default:
		return fmt.Errorf("google calendar: %s: %d %s", op, apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("%w: %s: %d %s", kind, op, apiErr.Code, apiErr.Message)
}

func hasRateLimitReason(e *googleapi.Error) bool {
	for _, item := range e.Errors {
		if rateLimitReasons[item.Reason] {
			return true
		}
	}
	return false
}
