package domain

import "time"

// TimeSlot represents an hourly start time that can become a new appointment
type TimeSlot struct {
	Start time.Time
}

// Label returns the slot time as HH:MM in the slot's location
func (s TimeSlot) Label() string {
	return s.Start.Format(TimeFormat)
}

// BusinessHours is the half-open daily range [OpenHour, CloseHour) in shop-local time
type BusinessHours struct {
	OpenHour  int
	CloseHour int
}

// IsValid checks that the range is non-empty and within a day
func (h BusinessHours) IsValid() bool {
	return h.OpenHour >= MinHour && h.CloseHour <= MaxHour && h.OpenHour < h.CloseHour
}

// ContainsStart reports whether t starts on an hour boundary inside business hours
func (h BusinessHours) ContainsStart(t time.Time) bool {
	if t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}
	return t.Hour() >= h.OpenHour && t.Hour() < h.CloseHour
}

// NearestSlot is the first free slot within the booking horizon
type NearestSlot struct {
	Slot    TimeSlot
	IsToday bool
}
