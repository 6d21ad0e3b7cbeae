package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// validateRequest проверяет услугу и идентификатор клиента
func validateRequest(req *Request) error {
	if !req.Service.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownService, req.Service)
	}
	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidTimeSlot)
	}
	return nil
}

// validateStart проверяет, что слот в рабочих часах, не в прошлом и в пределах горизонта
func validateStart(start, now, today time.Time, hours domain.BusinessHours, horizonDays int) error {
	if !hours.ContainsStart(start) {
		return fmt.Errorf("%w: %s is outside %02d:00-%02d:00",
			ErrInvalidTimeSlot, start.Format(domain.TimeFormat), hours.OpenHour, hours.CloseHour)
	}

	if start.Before(now) {
		return ErrSlotInPast
	}

	// Горизонт считается в локальных днях: сегодня и еще horizonDays-1 дней
	if !start.Before(today.AddDate(0, 0, horizonDays)) {
		return fmt.Errorf("%w: can only book %d days ahead", ErrDateTooFarInFuture, horizonDays)
	}

	return nil
}
