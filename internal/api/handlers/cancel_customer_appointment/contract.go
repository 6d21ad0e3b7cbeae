package cancel_customer_appointment

import (
	"context"

	"github.com/m04kA/SMC-BarberBot/internal/service/bookings/models"
)

type BookingService interface {
	CancelActive(ctx context.Context, customerID int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
