package create_booking

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.StartDatetime.IsZero() {
		return fmt.Errorf("%w: startDatetime is required", ErrInvalidInput)
	}

	if req.EndDatetime.IsZero() {
		return fmt.Errorf("%w: endDatetime is required", ErrInvalidInput)
	}

	return nil
}
