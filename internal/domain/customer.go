package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Customer represents a chat user who shared a phone number
type Customer struct {
	ID          int64 // stable chat identity
	Name        string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPhone returns true when the customer completed phone verification
func (c *Customer) HasPhone() bool {
	return c != nil && c.PhoneNumber != ""
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// NormalizePhone trims the input and checks it against the accepted phone format
func NormalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}
	return phone, nil
}

// NormalizeName trims the input and checks its length
func NormalizeName(raw string) (string, error) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// JoinName builds a display name from first and optional last name
func JoinName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if last == "" {
		return first
	}
	if first == "" {
		return last
	}
	return first + " " + last
}
