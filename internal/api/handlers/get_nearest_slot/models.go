package get_nearest_slot

import (
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

const (
	dayToday    = "today"
	dayTomorrow = "tomorrow"
)

// NearestSlotResponse HTTP response model
type NearestSlotResponse struct {
	Found    bool       `json:"found"`
	DayLabel string     `json:"dayLabel,omitempty"` // today|tomorrow|YYYY-MM-DD
	Time     string     `json:"time,omitempty"`     // "09:00"
	Start    *time.Time `json:"start,omitempty"`
}

// FromNearestSlot конвертирует ближайший слот в HTTP response
func FromNearestSlot(n domain.NearestSlot, found bool, today time.Time) *NearestSlotResponse {
	if !found {
		return &NearestSlotResponse{Found: false}
	}

	label := n.Slot.Start.Format(domain.DateFormat)
	switch {
	case n.IsToday:
		label = dayToday
	case label == today.AddDate(0, 0, 1).Format(domain.DateFormat):
		label = dayTomorrow
	}

	start := n.Slot.Start
	return &NearestSlotResponse{
		Found:    true,
		DayLabel: label,
		Time:     n.Slot.Label(),
		Start:    &start,
	}
}
