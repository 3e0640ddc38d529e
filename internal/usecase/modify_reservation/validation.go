package modify_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.ReservationID == "" {
		return fmt.Errorf("%w: reservationID is required", ErrInvalidInput)
	}
	if req.ResourceID != nil && *req.ResourceID == "" {
		return fmt.Errorf("%w: resourceID must not be empty", ErrInvalidInput)
	}
	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be empty", ErrInvalidInput)
	}
	if req.StartTime != nil && !req.StartTime.IsValid() {
		return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, *req.StartTime)
	}
	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if name == "" || len(name) > domain.MaxCustomerNameLength {
			return fmt.Errorf("%w: customer name must be 1..%d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
		}
	}
	if req.PartySize != nil && (*req.PartySize < 1 || *req.PartySize > domain.MaxPartySize) {
		return fmt.Errorf("%w: party size must be between 1 and %d", ErrInvalidInput, domain.MaxPartySize)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
