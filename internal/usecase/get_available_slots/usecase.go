package get_available_slots

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// UseCase движок доступности: свободные слоты дня и ближайший свободный слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	clock           Clock
	hours           domain.BusinessHours
	horizonDays     int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	clock Clock,
	hours domain.BusinessHours,
	horizonDays int,
	logger Logger,
) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		clock:           clock,
		hours:           hours,
		horizonDays:     horizonDays,
		logger:          logger,
	}
}

// Execute возвращает свободные слоты дня с проверкой горизонта бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.clock.Now()
	day := uc.clock.StartOfDay(req.Date)

	if err := validateDate(day, uc.clock.StartOfDay(now), uc.horizonDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date=%s rejected: %v", day.Format(domain.DateFormat), err)
		return nil, err
	}

	slots, err := uc.slotsAt(ctx, day, now)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: date=%s, slots=%d", day.Format(domain.DateFormat), len(slots))

	return &Response{Date: day, Slots: slots}, nil
}

// AvailableSlots свободные слоты дня без проверки горизонта
// Каждый вызов заново читает календарь, кэширования нет
func (uc *UseCase) AvailableSlots(ctx context.Context, day time.Time) ([]domain.TimeSlot, error) {
	return uc.slotsAt(ctx, uc.clock.StartOfDay(day), uc.clock.Now())
}

// NearestSlot ищет первый свободный слот, перебирая дни начиная с сегодняшнего в пределах горизонта
// found=false, если свободных слотов нет ни в одном дне; это не ошибка
func (uc *UseCase) NearestSlot(ctx context.Context) (domain.NearestSlot, bool, error) {
	now := uc.clock.Now()
	today := uc.clock.StartOfDay(now)

	for i := 0; i < uc.horizonDays; i++ {
		day := today.AddDate(0, 0, i)

		slots, err := uc.slotsAt(ctx, day, now)
		if err != nil {
			return domain.NearestSlot{}, false, err
		}
		if len(slots) > 0 {
			return domain.NearestSlot{Slot: slots[0], IsToday: i == 0}, true, nil
		}
	}

	uc.logger.Info("NearestSlot: no free slots within %d days", uc.horizonDays)
	return domain.NearestSlot{}, false, nil
}

// Days дни горизонта бронирования начиная с сегодняшнего (локальные полночи)
func (uc *UseCase) Days() []time.Time {
	today := uc.clock.StartOfDay(uc.clock.Now())
	days := make([]time.Time, uc.horizonDays)
	for i := range days {
		days[i] = today.AddDate(0, 0, i)
	}
	return days
}

// IsWithinHorizon проверяет, что день можно выбрать для бронирования
func (uc *UseCase) IsWithinHorizon(day time.Time) bool {
	today := uc.clock.StartOfDay(uc.clock.Now())
	return validateDate(uc.clock.StartOfDay(day), today, uc.horizonDays) == nil
}

func (uc *UseCase) slotsAt(ctx context.Context, day, now time.Time) ([]domain.TimeSlot, error) {
	from, to := uc.clock.DayBounds(day)

	booked, err := uc.appointmentRepo.FindOverlapping(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for %s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	return slices.Collect(freeSlots(from, uc.hours, now, booked)), nil
}
