package get_available_slots

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// freeSlots лениво перечисляет свободные часовые слоты дня
// day - локальная полночь, now - текущее время магазина.
// Слот отбрасывается, если его начало строго раньше now или попадает в [start, end) любой записи.
// Последовательность можно обходить повторно, она каждый раз вычисляется заново.
func freeSlots(
	day time.Time,
	hours domain.BusinessHours,
	now time.Time,
	booked []*domain.Appointment,
) iter.Seq[domain.TimeSlot] {
	return func(yield func(domain.TimeSlot) bool) {
		for h := hours.OpenHour; h < hours.CloseHour; h++ {
			start := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location())

			if start.Before(now) {
				continue
			}
			if isOccupied(start, booked) {
				continue
			}
			if !yield(domain.TimeSlot{Start: start}) {
				return
			}
		}
	}
}

// isOccupied проверяет, попадает ли начало слота внутрь существующей записи
// Слот, совпадающий с концом записи, свободен
func isOccupied(start time.Time, booked []*domain.Appointment) bool {
	for _, appt := range booked {
		if appt.Contains(start) {
			return true
		}
	}
	return false
}
