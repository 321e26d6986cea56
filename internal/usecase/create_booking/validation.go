package create_booking

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Segment == "" {
		return fmt.Errorf("%w: timeSegment is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.PrimaryPersonName) == "" {
		return fmt.Errorf("%w: primaryPersonName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.PrimaryContact) == "" {
		return fmt.Errorf("%w: primaryContact is required", ErrInvalidInput)
	}

	if len(req.Persons) == 0 {
		return fmt.Errorf("%w: at least one person is required", ErrInvalidInput)
	}

	for i, person := range req.Persons {
		if strings.TrimSpace(person.Name) == "" {
			return fmt.Errorf("%w: person #%d has no name", ErrInvalidInput, i+1)
		}
	}

	return nil
}
