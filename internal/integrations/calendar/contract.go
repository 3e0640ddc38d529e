package calendar

import (
	"context"
	"time"
)

// Client внешний календарь, в который зеркалируются подтвержденные брони
type Client interface {
	// Authenticate проверяет сервисные учетные данные. Ошибка прерывает тик целиком.
	Authenticate(ctx context.Context) error

	// UpsertEvent создает событие, если externalRef == nil, иначе обновляет его на месте.
	// Возвращает ссылку на событие во внешней системе.
	UpsertEvent(ctx context.Context, calendarID string, externalRef *string, event Event) (string, error)

	// DeleteEvent удаляет событие. Для отсутствующего события возвращает ErrNotFound.
	DeleteEvent(ctx context.Context, calendarID, externalRef string) error
}

// Event представление брони во внешнем календаре
type Event struct {
	Key         string // идентификатор брони
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}
