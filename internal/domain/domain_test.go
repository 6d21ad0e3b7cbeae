package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "international", in: "+37491234567", want: "+37491234567"},
		{name: "digits only", in: "091234567", want: "091234567"},
		{name: "trimmed", in: "  +37491234567\n", want: "+37491234567"},
		{name: "too short", in: "12345", wantErr: true},
		{name: "too long", in: "+1234567890123456", wantErr: true},
		{name: "letters", in: "+3749abc4567", wantErr: true},
		{name: "inner spaces", in: "+374 91 234567", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeName(t *testing.T) {
	got, err := NormalizeName("  Aram   Petrosyan ")
	require.NoError(t, err)
	assert.Equal(t, "Aram Petrosyan", got)

	_, err = NormalizeName("   ")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestJoinName(t *testing.T) {
	assert.Equal(t, "Aram Petrosyan", JoinName("Aram", "Petrosyan"))
	assert.Equal(t, "Aram", JoinName("Aram", ""))
	assert.Equal(t, "Petrosyan", JoinName("", "Petrosyan"))
}

func TestServiceKind(t *testing.T) {
	assert.Equal(t, 60*time.Minute, ServiceHaircut.Duration())
	assert.Equal(t, 30*time.Minute, ServiceBeard.Duration())

	s, err := ParseServiceKind("Beard")
	require.NoError(t, err)
	assert.Equal(t, ServiceBeard, s)

	_, err = ParseServiceKind("Massage")
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestAppointment_Intervals(t *testing.T) {
	loc := time.FixedZone("AMT", 4*60*60)
	start := time.Date(2026, 10, 14, 10, 0, 0, 0, loc)
	customer := &Customer{ID: 7, Name: "Aram"}

	appt := NewAppointment(customer, ServiceHaircut, start)
	assert.Equal(t, start.Add(time.Hour), appt.EndTime)
	assert.Equal(t, "Aram", appt.CustomerName)

	// Полуоткрытые интервалы: граница end свободна
	assert.True(t, appt.Contains(start))
	assert.True(t, appt.Contains(start.Add(59*time.Minute)))
	assert.False(t, appt.Contains(start.Add(time.Hour)))

	assert.True(t, appt.Overlaps(start.Add(30*time.Minute), start.Add(90*time.Minute)))
	assert.False(t, appt.Overlaps(start.Add(time.Hour), start.Add(2*time.Hour)))
	assert.False(t, appt.Overlaps(start.Add(-time.Hour), start))

	assert.True(t, appt.IsActive(start.Add(30*time.Minute)))
	assert.False(t, appt.IsActive(start.Add(time.Hour)))
}

func TestBusinessHours_ContainsStart(t *testing.T) {
	loc := time.UTC
	hours := BusinessHours{OpenHour: 9, CloseHour: 20}

	assert.True(t, hours.IsValid())
	assert.True(t, hours.ContainsStart(time.Date(2026, 10, 14, 9, 0, 0, 0, loc)))
	assert.True(t, hours.ContainsStart(time.Date(2026, 10, 14, 19, 0, 0, 0, loc)))
	assert.False(t, hours.ContainsStart(time.Date(2026, 10, 14, 20, 0, 0, 0, loc)))
	assert.False(t, hours.ContainsStart(time.Date(2026, 10, 14, 8, 0, 0, 0, loc)))
	assert.False(t, hours.ContainsStart(time.Date(2026, 10, 14, 10, 30, 0, 0, loc)))
	assert.False(t, BusinessHours{OpenHour: 20, CloseHour: 9}.IsValid())
}
