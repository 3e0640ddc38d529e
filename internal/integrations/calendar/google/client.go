package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-BayBookingService/internal/integrations/calendar"
)

// eventNamespace пространство имен для id событий из ключей, не являющихся UUID
var eventNamespace = uuid.NameSpaceURL

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры клиента
type Config struct {
	CredentialsFile    string
	RateLimitPerSecond float64
	Burst              int
}

// Client адаптер Google Calendar API.
// Id события выводится из id брони, поэтому повторное создание после потерянного ответа
// не порождает дубликат: 409 превращается в обновление.
type Client struct {
	svc     *gcal.Service
	tokens  oauth2.TokenSource
	limiter *rate.Limiter
	log     Logger
}

// NewClient создает клиента с учетными данными сервисного аккаунта
func NewClient(ctx context.Context, cfg Config, log Logger) (*Client, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCredentials, cfg.CredentialsFile, err)
	}

	creds, err := googleoauth.CredentialsFromJSON(ctx, data, gcal.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentials, err)
	}

	svc, err := gcal.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("google calendar: create service: %w", err)
	}

	return newClient(svc, creds.TokenSource, cfg, log), nil
}

// NewClientWithOptions клиент с произвольными опциями транспорта (endpoint, http.Client)
func NewClientWithOptions(ctx context.Context, cfg Config, log Logger, opts ...option.ClientOption) (*Client, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google calendar: create service: %w", err)
	}
	return newClient(svc, nil, cfg, log), nil
}

func newClient(svc *gcal.Service, tokens oauth2.TokenSource, cfg Config, log Logger) *Client {
	limit := rate.Inf
	if cfg.RateLimitPerSecond > 0 {
		limit = rate.Limit(cfg.RateLimitPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		svc:     svc,
		tokens:  tokens,
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
	}
}

// Authenticate получает токен доступа; любая ошибка означает, что тик выполнять нельзя
func (c *Client) Authenticate(ctx context.Context) error {
	if c.tokens == nil {
		return ctx.Err()
	}

	type result struct {
		token *oauth2.Token
		err   error
	}
	done := make(chan result, 1)
	go func() {
		tok, err := c.tokens.Token()
		done <- result{tok, err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: token request: %v", calendar.ErrAuth, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return fmt.Errorf("%w: token request: %v", calendar.ErrAuth, r.err)
		}
		if !r.token.Valid() {
			return fmt.Errorf("%w: token is not valid", calendar.ErrAuth)
		}
		return nil
	}
}

// UpsertEvent создает или обновляет событие брони
func (c *Client) UpsertEvent(ctx context.Context, calendarID string, externalRef *string, event calendar.Event) (string, error) {
	body := toEvent(event)

	if externalRef != nil {
		return c.update(ctx, calendarID, *externalRef, body)
	}

	body.Id = EventID(event.Key)
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	created, err := c.svc.Events.Insert(calendarID, body).Context(ctx).Do()
	if err == nil {
		return created.Id, nil
	}

	mapped := mapError("insert", err)
	if !errors.Is(mapped, errConflict) {
		return "", mapped
	}

	// Событие уже создано предыдущей попыткой, ответ на которую потерян
	c.log.Warn("GoogleCalendar: event %s already exists in %s, updating", body.Id, calendarID)
	return c.update(ctx, calendarID, body.Id, body)
}

func (c *Client) update(ctx context.Context, calendarID, eventID string, body *gcal.Event) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	updated, err := c.svc.Events.Update(calendarID, eventID, body).Context(ctx).Do()
	if err != nil {
		return "", mapError("update", err)
	}
	return updated.Id, nil
}

// DeleteEvent удаляет событие; отсутствующее событие дает calendar.ErrNotFound
func (c *Client) DeleteEvent(ctx context.Context, calendarID, externalRef string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	err := c.svc.Events.Delete(calendarID, externalRef).SendUpdates("none").Context(ctx).Do()
	return mapError("delete", err)
}

func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: client-side limit: %v", calendar.ErrRateLimited, err)
	}
	return nil
}

// EventID детерминированный id события Google (символы base32hex: 0-9, a-v)
func EventID(key string) string {
	id, err := uuid.Parse(key)
	if err != nil {
		id = uuid.NewSHA1(eventNamespace, []byte(key))
	}
	return strings.ReplaceAll(id.String(), "-", "")
}

func toEvent(e calendar.Event) *gcal.Event {
	return &gcal.Event{
		Summary:     e.Title,
		Description: e.Description,
		Status:      "confirmed",
		Start:       toDateTime(e.Start),
		End:         toDateTime(e.End),
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{"reservationId": e.Key},
		},
	}
}

func toDateTime(t time.Time) *gcal.EventDateTime {
	dt := &gcal.EventDateTime{DateTime: t.Format(time.RFC3339)}
	if name := t.Location().String(); name != "" && name != "Local" {
		dt.TimeZone = name
	}
	return dt
}
