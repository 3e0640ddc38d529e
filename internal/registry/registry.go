package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/SMC-BayBookingService/internal/config"
	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

// ErrInvalidResource возвращается при некорректном описании ресурса
var ErrInvalidResource = errors.New("registry: invalid resource")

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Registry статический набор ресурсов; после создания не меняется
type Registry struct {
	resources []domain.Resource
	byID      map[string]int
}

// New проверяет и индексирует ресурсы
func New(resources []domain.Resource) (*Registry, error) {
	r := &Registry{
		resources: make([]domain.Resource, 0, len(resources)),
		byID:      make(map[string]int, len(resources)),
	}

	for _, res := range resources {
		if res.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidResource)
		}
		if _, dup := r.byID[res.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidResource, res.ID)
		}
		if res.CalendarID == "" {
			return nil, fmt.Errorf("%w: %s has no calendar id", ErrInvalidResource, res.ID)
		}
		if res.Location == nil {
			res.Location = time.UTC
		}
		if err := validateHours(res.ID, res.Hours); err != nil {
			return nil, err
		}
		r.byID[res.ID] = len(r.resources)
		r.resources = append(r.resources, res)
	}

	return r, nil
}

// FromConfig строит реестр из секций [[resources]]
func FromConfig(cfgs []config.ResourceConfig) (*Registry, error) {
	resources := make([]domain.Resource, 0, len(cfgs))

	for _, c := range cfgs {
		loc := time.UTC
		if c.Timezone != "" {
			l, err := time.LoadLocation(c.Timezone)
			if err != nil {
				return nil, fmt.Errorf("%w: %s timezone %q: %v", ErrInvalidResource, c.ID, c.Timezone, err)
			}
			loc = l
		}

		def, err := parseDay(c.ID, config.DayConfig{Open: c.Hours.Open, Close: c.Hours.Close})
		if err != nil {
			return nil, err
		}

		hours := domain.BusinessHours{Default: def}
		if len(c.Hours.Days) > 0 {
			hours.Weekdays = make(map[time.Weekday]domain.DayHours, len(c.Hours.Days))
		}
		for name, dc := range c.Hours.Days {
			wd, ok := weekdays[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("%w: %s unknown weekday %q", ErrInvalidResource, c.ID, name)
			}
			day, err := parseDay(c.ID, dc)
			if err != nil {
				return nil, err
			}
			hours.Weekdays[wd] = day
		}

		name := c.Name
		if name == "" {
			name = c.ID
		}

		resources = append(resources, domain.Resource{
			ID:         c.ID,
			Name:       name,
			CalendarID: c.CalendarID,
			Location:   loc,
			Hours:      hours,
		})
	}

	return New(resources)
}

func parseDay(resourceID string, dc config.DayConfig) (domain.DayHours, error) {
	if dc.Closed {
		return domain.DayHours{Closed: true}, nil
	}
	open, err := types.NewTimeStringFromString(dc.Open)
	if err != nil {
		return domain.DayHours{}, fmt.Errorf("%w: %s open time: %v", ErrInvalidResource, resourceID, err)
	}
	closeAt, err := types.NewTimeStringFromString(dc.Close)
	if err != nil {
		return domain.DayHours{}, fmt.Errorf("%w: %s close time: %v", ErrInvalidResource, resourceID, err)
	}
	return domain.DayHours{Open: open, Close: closeAt}, nil
}

func validateHours(resourceID string, h domain.BusinessHours) error {
	check := func(d domain.DayHours) error {
		if d.Closed {
			return nil
		}
		if _, ok := d.Window(); !ok {
			return fmt.Errorf("%w: %s hours %s-%s", ErrInvalidResource, resourceID, d.Open, d.Close)
		}
		return nil
	}
	if err := check(h.Default); err != nil {
		return err
	}
	for _, d := range h.Weekdays {
		if err := check(d); err != nil {
			return err
		}
	}
	return nil
}

// Get возвращает ресурс по идентификатору
func (r *Registry) Get(id string) (*domain.Resource, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrResourceNotFound, id)
	}
	res := r.resources[idx]
	return &res, nil
}

// All возвращает ресурсы в порядке конфигурации
func (r *Registry) All() []domain.Resource {
	out := make([]domain.Resource, len(r.resources))
	copy(out, r.resources)
	return out
}

// IDs идентификаторы в порядке конфигурации
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.resources))
	for i, res := range r.resources {
		ids[i] = res.ID
	}
	return ids
}
