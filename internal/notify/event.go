package notify

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// Kind тип события для оператора
type Kind string

const (
	KindNewBooking   Kind = "new_booking"
	KindCancellation Kind = "cancellation"
	KindSweepReport  Kind = "sweep_report"
)

// Event событие, о котором сообщается оператору магазина
type Event struct {
	Kind         Kind
	CustomerName string
	PhoneNumber  string
	Service      domain.ServiceKind
	Start        time.Time
	Deleted      int64 // только для KindSweepReport
}

// NewBookingEvent событие о новой записи
func NewBookingEvent(customer *domain.Customer, appt *domain.Appointment) Event {
	return Event{
		Kind:         KindNewBooking,
		CustomerName: appt.CustomerName,
		PhoneNumber:  customer.PhoneNumber,
		Service:      appt.Service,
		Start:        appt.StartTime,
	}
}

// CancellationEvent событие об отмене записи клиентом
func CancellationEvent(customer *domain.Customer, appt *domain.Appointment) Event {
	e := NewBookingEvent(customer, appt)
	e.Kind = KindCancellation
	return e
}

// SweepReportEvent отчет об очистке прошедших записей
func SweepReportEvent(deleted int64) Event {
	return Event{Kind: KindSweepReport, Deleted: deleted}
}

// Text текст сообщения для оператора
func (e Event) Text() string {
	switch e.Kind {
	case KindNewBooking:
		return fmt.Sprintf("New booking\nName: %s\nPhone: %s\nService: %s\nTime: %s\nDate: %s",
			e.CustomerName, e.PhoneNumber, e.Service, e.Start.Format(domain.TimeFormat), e.Start.Format(domain.DateFormat))
	case KindCancellation:
		return fmt.Sprintf("Booking cancelled\nName: %s\nPhone: %s\nService: %s\nTime: %s\nDate: %s",
			e.CustomerName, e.PhoneNumber, e.Service, e.Start.Format(domain.TimeFormat), e.Start.Format(domain.DateFormat))
	case KindSweepReport:
		return fmt.Sprintf("Cleanup finished: %d past appointment(s) removed", e.Deleted)
	default:
		return string(e.Kind)
	}
}
