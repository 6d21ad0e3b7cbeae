package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Service      string    `json:"service"`
	Date         string    `json:"date"`      // "2026-10-14"
	StartTime    string    `json:"startTime"` // "15:00"
	EndTime      string    `json:"endTime"`   // "15:30"
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           a.ID,
		CustomerID:   a.CustomerID,
		CustomerName: a.CustomerName,
		Service:      string(a.Service),
		Date:         a.StartTime.Format(domain.DateFormat),
		StartTime:    a.StartTime.Format(domain.TimeFormat),
		EndTime:      a.EndTime.Format(domain.TimeFormat),
		Start:        a.StartTime,
		End:          a.EndTime,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	items := make([]AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		items = append(items, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{
		Appointments: items,
		Total:        len(items),
	}
}
