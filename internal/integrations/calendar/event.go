package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

// NewEvent строит событие из брони; время брони в часовом поясе ресурса
func NewEvent(res *domain.Reservation, resource *domain.Resource) Event {
	loc := resource.Location
	start := res.StartTime.On(res.Date, loc)

	var desc strings.Builder
	fmt.Fprintf(&desc, "Reservation: %s\nBay: %s", res.ID, resourceName(resource))
	if res.CustomerPhone != nil && *res.CustomerPhone != "" {
		fmt.Fprintf(&desc, "\nPhone: %s", *res.CustomerPhone)
	}
	if res.Notes != nil && *res.Notes != "" {
		fmt.Fprintf(&desc, "\nNotes: %s", *res.Notes)
	}

	return Event{
		Key:         res.ID,
		Title:       fmt.Sprintf("%s (%d pax)", res.CustomerName, res.PartySize),
		Description: desc.String(),
		Start:       start,
		End:         start.Add(time.Duration(res.DurationMinutes) * time.Minute),
	}
}

func resourceName(r *domain.Resource) string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}
