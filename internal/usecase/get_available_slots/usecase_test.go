package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBot/internal/clock"
	"github.com/m04kA/SMC-BarberBot/internal/domain"
	"github.com/m04kA/SMC-BarberBot/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BarberBot/pkg/logger"
)

type failingRepo struct{}

func (failingRepo) FindOverlapping(context.Context, time.Time, time.Time) ([]*domain.Appointment, error) {
	return nil, errors.New("connection refused")
}

func newUseCase(repo AppointmentRepository, now time.Time) *UseCase {
	return NewUseCase(repo, clock.NewFixed(now), hours, 7, logger.NewNop())
}

func bookAllDay(t *testing.T, repo *memory.Repository, d time.Time) {
	t.Helper()
	customer := &domain.Customer{ID: 99, Name: "busy"}
	for h := hours.OpenHour; h < hours.CloseHour; h++ {
		start := time.Date(d.Year(), d.Month(), d.Day(), h, 0, 0, 0, loc)
		_, err := repo.CreateIfFree(context.Background(), domain.NewAppointment(customer, domain.ServiceHaircut, start))
		require.NoError(t, err)
	}
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	uc := newUseCase(repo, at(14, 30))

	resp, err := uc.Execute(ctx, &Request{Date: at(18, 0)})
	require.NoError(t, err)
	assert.Equal(t, day, resp.Date)
	assert.Equal(t, "15:00", resp.Slots[0].Label())

	_, err = uc.Execute(ctx, &Request{Date: day.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(ctx, &Request{Date: day.AddDate(0, 0, 7)})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	_, err = uc.Execute(ctx, &Request{Date: day.AddDate(0, 0, 6)})
	assert.NoError(t, err)
}

func TestUseCase_BookedSlotDisappears(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	uc := newUseCase(repo, at(8, 0))

	_, err := repo.CreateIfFree(ctx, domain.NewAppointment(&domain.Customer{ID: 1, Name: "Aram"}, domain.ServiceBeard, at(15, 0)))
	require.NoError(t, err)

	slots, err := uc.AvailableSlots(ctx, day)
	require.NoError(t, err)
	assert.NotContains(t, labels(slots), "15:00")
	assert.Contains(t, labels(slots), "16:00")
}

func TestUseCase_NearestSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("today", func(t *testing.T) {
		uc := newUseCase(memory.NewRepository(), at(14, 30))

		nearest, found, err := uc.NearestSlot(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, nearest.IsToday)
		assert.Equal(t, at(15, 0), nearest.Slot.Start)
	})

	t.Run("after closing rolls to tomorrow", func(t *testing.T) {
		uc := newUseCase(memory.NewRepository(), at(20, 15))

		nearest, found, err := uc.NearestSlot(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.False(t, nearest.IsToday)
		assert.Equal(t, time.Date(2026, 10, 15, 9, 0, 0, 0, loc), nearest.Slot.Start)
	})

	t.Run("fully booked week", func(t *testing.T) {
		repo := memory.NewRepository()
		for i := 0; i < 7; i++ {
			bookAllDay(t, repo, day.AddDate(0, 0, i))
		}
		uc := newUseCase(repo, at(8, 0))

		_, found, err := uc.NearestSlot(ctx)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("repository failure", func(t *testing.T) {
		uc := newUseCase(failingRepo{}, at(8, 0))

		_, _, err := uc.NearestSlot(ctx)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUseCase_Days(t *testing.T) {
	uc := newUseCase(memory.NewRepository(), at(14, 30))

	days := uc.Days()
	require.Len(t, days, 7)
	assert.Equal(t, day, days[0])
	assert.Equal(t, day.AddDate(0, 0, 6), days[6])

	assert.True(t, uc.IsWithinHorizon(at(23, 59)))
	assert.True(t, uc.IsWithinHorizon(day.AddDate(0, 0, 6)))
	assert.False(t, uc.IsWithinHorizon(day.AddDate(0, 0, 7)))
	assert.False(t, uc.IsWithinHorizon(day.AddDate(0, 0, -1)))
}
