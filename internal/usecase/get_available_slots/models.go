package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Любой момент внутри нужного локального дня
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time         // Локальная полночь запрошенного дня
	Slots []domain.TimeSlot // Свободные слоты по возрастанию
}
