package create_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID == "" {
		return fmt.Errorf("%w: resourceID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.StartTime.IsValid() {
		return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, req.StartTime)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	if req.PartySize < 0 || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: party size must be between 1 and %d", ErrInvalidInput, domain.MaxPartySize)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
