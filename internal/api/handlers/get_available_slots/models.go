package get_available_slots

import (
	"github.com/m04kA/SMC-BarberBot/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberBot/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date  string   `json:"date"`  // "2026-10-14"
	Slots []string `json:"slots"` // ["09:00", "10:00"]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.Label())
	}
	return &SlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
