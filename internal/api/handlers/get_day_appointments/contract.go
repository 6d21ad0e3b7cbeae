package get_day_appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/service/bookings/models"
)

type BookingService interface {
	GetDayAppointments(ctx context.Context, day time.Time) (*models.AppointmentListResponse, error)
}

type DateParser interface {
	ParseDate(value string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
