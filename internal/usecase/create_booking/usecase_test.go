package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBot/internal/clock"
	"github.com/m04kA/SMC-BarberBot/internal/domain"
	"github.com/m04kA/SMC-BarberBot/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BarberBot/internal/notify"
	"github.com/m04kA/SMC-BarberBot/pkg/logger"
)

var (
	loc   = time.FixedZone("AMT", 4*60*60)
	hours = domain.BusinessHours{OpenHour: 9, CloseHour: 20}
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, loc)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(e notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

type outcomeMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *outcomeMetrics) IncBooking(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

type brokenCustomers struct{}

func (brokenCustomers) GetByID(context.Context, int64) (*domain.Customer, error) {
	return nil, errors.New("connection reset")
}

type fixture struct {
	repo     *memory.Repository
	notifier *recordingNotifier
	metrics  *outcomeMetrics
	uc       *UseCase
}

func newFixture(t *testing.T, now time.Time, customerIDs ...int64) *fixture {
	t.Helper()
	f := &fixture{
		repo:     memory.NewRepository(),
		notifier: &recordingNotifier{},
		metrics:  &outcomeMetrics{},
	}
	for _, id := range customerIDs {
		_, err := f.repo.Upsert(context.Background(), &domain.Customer{ID: id, Name: "Customer", PhoneNumber: "+37491234567"})
		require.NoError(t, err)
	}
	f.uc = NewUseCase(f.repo, f.repo, clock.NewFixed(now), f.notifier, f.metrics, hours, 7, logger.NewNop())
	return f
}

func TestUseCase_Execute_BeardEndsHalfHourLater(t *testing.T) {
	f := newFixture(t, at(14, 8, 0), 1)

	resp, err := f.uc.Execute(context.Background(), &Request{
		CustomerID: 1,
		Service:    domain.ServiceBeard,
		Start:      at(14, 15, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, at(14, 15, 0), resp.StartTime)
	assert.Equal(t, at(14, 15, 30), resp.EndTime)
	assert.Equal(t, "Customer", resp.CustomerName)
	assert.Equal(t, 1, f.notifier.count())
	assert.Equal(t, notify.KindNewBooking, f.notifier.events[0].Kind)
	assert.Equal(t, []string{"created"}, f.metrics.outcomes)
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "unknown service", req: Request{CustomerID: 1, Service: "Massage", Start: at(14, 15, 0)}, wantErr: ErrUnknownService},
		{name: "before opening", req: Request{CustomerID: 1, Service: domain.ServiceHaircut, Start: at(14, 8, 0)}, wantErr: ErrInvalidTimeSlot},
		{name: "closing hour", req: Request{CustomerID: 1, Service: domain.ServiceHaircut, Start: at(14, 20, 0)}, wantErr: ErrInvalidTimeSlot},
		{name: "not on the hour", req: Request{CustomerID: 1, Service: domain.ServiceHaircut, Start: at(14, 15, 30)}, wantErr: ErrInvalidTimeSlot},
		{name: "started hour", req: Request{CustomerID: 1, Service: domain.ServiceHaircut, Start: at(14, 14, 0)}, wantErr: ErrSlotInPast},
		{name: "beyond horizon", req: Request{CustomerID: 1, Service: domain.ServiceHaircut, Start: at(21, 10, 0)}, wantErr: ErrDateTooFarInFuture},
		{name: "unknown customer", req: Request{CustomerID: 2, Service: domain.ServiceHaircut, Start: at(14, 16, 0)}, wantErr: ErrCustomerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, at(14, 14, 30), 1)

			_, err := f.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.repo.Len())
			assert.Zero(t, f.notifier.count())
			assert.Equal(t, []string{"rejected"}, f.metrics.outcomes)
		})
	}
}

func TestUseCase_Execute_LastHorizonDay(t *testing.T) {
	f := newFixture(t, at(14, 14, 30), 1)

	_, err := f.uc.Execute(context.Background(), &Request{CustomerID: 1, Service: domain.ServiceHaircut, Start: at(20, 19, 0)})
	assert.NoError(t, err)
}

func TestUseCase_Execute_Conflict(t *testing.T) {
	f := newFixture(t, at(14, 8, 0), 1, 2)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{CustomerID: 1, Service: domain.ServiceHaircut, Start: at(14, 10, 0)})
	require.NoError(t, err)

	// Борода 10:00-10:30 пересекается со стрижкой 10:00-11:00
	_, err = f.uc.Execute(ctx, &Request{CustomerID: 2, Service: domain.ServiceBeard, Start: at(14, 10, 0)})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Граница end свободна
	_, err = f.uc.Execute(ctx, &Request{CustomerID: 2, Service: domain.ServiceBeard, Start: at(14, 11, 0)})
	assert.NoError(t, err)

	assert.Equal(t, []string{"created", "conflict", "created"}, f.metrics.outcomes)
	assert.Equal(t, 2, f.notifier.count())
}

func TestUseCase_Execute_OneActiveAppointment(t *testing.T) {
	f := newFixture(t, at(14, 8, 0), 1)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{CustomerID: 1, Service: domain.ServiceHaircut, Start: at(15, 10, 0)})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{CustomerID: 1, Service: domain.ServiceBeard, Start: at(16, 12, 0)})
	assert.ErrorIs(t, err, ErrActiveAppointmentExists)
	assert.Equal(t, 1, f.repo.Len())
}

func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	const attempts = 10
	ids := make([]int64, attempts)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	f := newFixture(t, at(14, 8, 0), ids...)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), &Request{CustomerID: id, Service: domain.ServiceHaircut, Start: at(14, 12, 0)})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, f.repo.Len())
}

func TestUseCase_Execute_RepositoryFailure(t *testing.T) {
	repo := memory.NewRepository()
	uc := NewUseCase(repo, brokenCustomers{}, clock.NewFixed(at(14, 8, 0)), &recordingNotifier{}, &outcomeMetrics{}, hours, 7, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 1, Service: domain.ServiceHaircut, Start: at(14, 12, 0)})
	assert.ErrorIs(t, err, ErrInternal)
}
