package get_customer_appointment

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

// Handle GET /api/v1/customers/{customerId}/appointment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil || customerID <= 0 {
		h.logger.Warn("GET /customers/{id}/appointment - Invalid customer ID: %q", mux.Vars(r)["customerId"])
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	appt, err := h.service.GetActive(r.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAppointmentNotFound):
			h.logger.Warn("GET /customers/{id}/appointment - Not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /customers/{id}/appointment - Failed to get appointment: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id}/appointment - Appointment retrieved: customer_id=%d, appointment_id=%d",
		customerID, appt.ID)
	handlers.RespondJSON(w, http.StatusOK, appt)
}
