// Package memcal календарь в памяти процесса: провайдер "memory" и подмена в тестах.
package memcal

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/m04kA/SMC-BayBookingService/internal/integrations/calendar"
)

// Calls счетчики вызовов внешнего API
type Calls struct {
	Auth   int
	Create int
	Update int
	Delete int
}

// Total количество вызовов, меняющих календарь
func (c Calls) Total() int {
	return c.Create + c.Update + c.Delete
}

type stored struct {
	calendarID string
	event      calendar.Event
}

// Calendar in-memory реализация calendar.Client
type Calendar struct {
	mu       sync.Mutex
	seq      int
	events   map[string]stored // ref -> событие
	calls    Calls
	authErr  error
	failures map[string]error // ключ брони -> ошибка
}

func New() *Calendar {
	return &Calendar{
		events:   make(map[string]stored),
		failures: make(map[string]error),
	}
}

func (c *Calendar) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls.Auth++
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.authErr
}

func (c *Calendar) UpsertEvent(ctx context.Context, calendarID string, externalRef *string, event calendar.Event) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if externalRef == nil {
		c.calls.Create++
	} else {
		c.calls.Update++
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := c.failures[event.Key]; err != nil {
		return "", err
	}

	if externalRef == nil {
		c.seq++
		ref := fmt.Sprintf("mem-%d", c.seq)
		c.events[ref] = stored{calendarID: calendarID, event: event}
		return ref, nil
	}

	current, ok := c.events[*externalRef]
	if !ok || current.calendarID != calendarID {
		return "", fmt.Errorf("%w: event %s in %s", calendar.ErrNotFound, *externalRef, calendarID)
	}
	c.events[*externalRef] = stored{calendarID: calendarID, event: event}
	return *externalRef, nil
}

func (c *Calendar) DeleteEvent(ctx context.Context, calendarID, externalRef string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls.Delete++
	if err := ctx.Err(); err != nil {
		return err
	}

	current, ok := c.events[externalRef]
	if !ok || current.calendarID != calendarID {
		return fmt.Errorf("%w: event %s in %s", calendar.ErrNotFound, externalRef, calendarID)
	}
	if err := c.failures[current.event.Key]; err != nil {
		return err
	}
	delete(c.events, externalRef)
	return nil
}

// Events события календаря, упорядоченные по началу
func (c *Calendar) Events(calendarID string) []calendar.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]calendar.Event, 0)
	for _, s := range c.events {
		if s.calendarID == calendarID {
			out = append(out, s.event)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Lookup событие по ссылке
func (c *Calendar) Lookup(externalRef string) (string, calendar.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.events[externalRef]
	return s.calendarID, s.event, ok
}

// Calls счетчики вызовов с момента создания или ResetCalls
func (c *Calendar) Calls() Calls {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func (c *Calendar) ResetCalls() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = Calls{}
}

// FailAuth заставляет Authenticate возвращать err (nil снимает сбой)
func (c *Calendar) FailAuth(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authErr = err
}

// FailKey заставляет вызовы для брони key возвращать err (nil снимает сбой)
func (c *Calendar) FailKey(key string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.failures, key)
		return
	}
	c.failures[key] = err
}

// Drop удаляет событие в обход API (ручное удаление в календаре)
func (c *Calendar) Drop(externalRef string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.events, externalRef)
}
