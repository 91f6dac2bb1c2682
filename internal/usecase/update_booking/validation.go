package update_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.StartDatetime.IsZero() {
		return fmt.Errorf("%w: startDatetime is required", ErrInvalidInput)
	}

	if req.EndDatetime.IsZero() {
		return fmt.Errorf("%w: endDatetime is required", ErrInvalidInput)
	}

	return nil
}
