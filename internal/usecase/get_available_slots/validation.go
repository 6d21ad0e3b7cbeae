package get_available_slots

import (
	"fmt"
	"time"
)

// validateDate проверяет, что день попадает в горизонт [today, today+horizonDays)
func validateDate(day, today time.Time, horizonDays int) error {
	if day.Before(today) {
		return ErrInvalidDate
	}

	if horizonDays <= 0 {
		return nil
	}

	last := today.AddDate(0, 0, horizonDays-1)
	if day.After(last) {
		return fmt.Errorf("%w: can only book %d days ahead", ErrDateTooFarInFuture, horizonDays)
	}

	return nil
}
