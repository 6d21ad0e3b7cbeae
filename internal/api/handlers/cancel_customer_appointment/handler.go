package cancel_customer_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBot/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBot/internal/service/bookings"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgNotFound          = "активная запись не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/customers/{customerId}/appointment
// Отмена выполняется так же, как из чата: запись удаляется, оператор получает уведомление
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil || customerID <= 0 {
		h.logger.Warn("DELETE /customers/{id}/appointment - Invalid customer ID: %q", mux.Vars(r)["customerId"])
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	appt, err := h.service.CancelActive(r.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /customers/{id}/appointment - Not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /customers/{id}/appointment - Failed to cancel appointment: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /customers/{id}/appointment - Appointment cancelled: customer_id=%d, appointment_id=%d",
		customerID, appt.ID)
	handlers.RespondJSON(w, http.StatusOK, appt)
}
