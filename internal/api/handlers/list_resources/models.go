package list_resources

import (
	"strings"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

// DayHoursResponse часы работы на день
type DayHoursResponse struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// ResourceResponse описание бокса
type ResourceResponse struct {
	ID         string                      `json:"id"`
	Name       string                      `json:"name"`
	CalendarID string                      `json:"calendarId"`
	Timezone   string                      `json:"timezone"`
	Hours      DayHoursResponse            `json:"hours"`
	Weekdays   map[string]DayHoursResponse `json:"weekdays,omitempty"`
}

type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

func toDayHours(d domain.DayHours) DayHoursResponse {
	if d.Closed {
		return DayHoursResponse{Closed: true}
	}
	return DayHoursResponse{Open: d.Open.String(), Close: d.Close.String()}
}

// FromDomainResources сохраняет порядок конфигурации
func FromDomainResources(resources []domain.Resource) *ResourceListResponse {
	resp := &ResourceListResponse{Resources: make([]ResourceResponse, 0, len(resources))}

	for _, r := range resources {
		item := ResourceResponse{
			ID:         r.ID,
			Name:       r.Name,
			CalendarID: r.CalendarID,
			Timezone:   "UTC",
			Hours:      toDayHours(r.Hours.Default),
		}
		if r.Location != nil {
			item.Timezone = r.Location.String()
		}
		if len(r.Hours.Weekdays) > 0 {
			item.Weekdays = make(map[string]DayHoursResponse, len(r.Hours.Weekdays))
			for wd, d := range r.Hours.Weekdays {
				item.Weekdays[strings.ToLower(wd.String())] = toDayHours(d)
			}
		}
		resp.Resources = append(resp.Resources, item)
	}

	return resp
}
