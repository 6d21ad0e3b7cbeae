package get_day_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBot/internal/api/handlers"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	dates   DateParser
	logger  Logger
}

func NewHandler(service BookingService, dates DateParser, logger Logger) *Handler {
	return &Handler{
		service: service,
		dates:   dates,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /appointments - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	day, err := h.dates.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDayAppointments(r.Context(), day)
	if err != nil {
		h.logger.Error("GET /appointments - Failed to get appointments: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: date=%s, total=%d", dateStr, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
