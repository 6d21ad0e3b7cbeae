package domain

import (
	"fmt"
	"time"
)

// ServiceKind is one of the services the shop performs
type ServiceKind string

const (
	ServiceHaircut ServiceKind = "Haircut"
	ServiceBeard   ServiceKind = "Beard"
)

// Services lists the bookable services in menu order
var Services = []ServiceKind{ServiceHaircut, ServiceBeard}

// Duration returns the fixed length of the service
func (s ServiceKind) Duration() time.Duration {
	switch s {
	case ServiceHaircut:
		return 60 * time.Minute
	case ServiceBeard:
		return 30 * time.Minute
	default:
		return 0
	}
}

// IsValid returns true for known services
func (s ServiceKind) IsValid() bool {
	return s == ServiceHaircut || s == ServiceBeard
}

// ParseServiceKind converts a stored or callback value into a ServiceKind
func ParseServiceKind(v string) (ServiceKind, error) {
	s := ServiceKind(v)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownService, v)
	}
	return s, nil
}

// Appointment represents a reserved slot
type Appointment struct {
	ID           int64
	CustomerID   int64
	CustomerName string // snapshot of the display name at booking time
	Service      ServiceKind
	StartTime    time.Time
	EndTime      time.Time
	CreatedAt    time.Time
}

// NewAppointment builds an appointment with EndTime derived from the service duration
func NewAppointment(customer *Customer, service ServiceKind, start time.Time) *Appointment {
	return &Appointment{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Service:      service,
		StartTime:    start,
		EndTime:      start.Add(service.Duration()),
	}
}

// Overlaps reports whether [start, end) shares any instant with the appointment
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.EndTime) && a.StartTime.Before(end)
}

// Contains reports whether t falls within [StartTime, EndTime)
func (a *Appointment) Contains(t time.Time) bool {
	return !t.Before(a.StartTime) && t.Before(a.EndTime)
}

// IsActive returns true while the appointment has not ended yet
func (a *Appointment) IsActive(now time.Time) bool {
	return a.EndTime.After(now)
}
