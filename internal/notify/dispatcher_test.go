package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	"github.com/m04kA/SMC-BarberBot/pkg/logger"
	"github.com/m04kA/SMC-BarberBot/pkg/metrics"
)

type recordingSender struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (s *recordingSender) Send(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.texts = append(s.texts, text)
	return nil
}

func (s *recordingSender) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncNotification(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[result]++
}

func (m *countingMetrics) get(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[result]
}

func TestEvent_Text(t *testing.T) {
	loc := time.FixedZone("AMT", 4*60*60)
	customer := &domain.Customer{ID: 1, Name: "Aram", PhoneNumber: "+37491234567"}
	appt := domain.NewAppointment(customer, domain.ServiceBeard, time.Date(2026, 10, 14, 15, 0, 0, 0, loc))

	text := NewBookingEvent(customer, appt).Text()
	assert.Contains(t, text, "New booking")
	assert.Contains(t, text, "Aram")
	assert.Contains(t, text, "+37491234567")
	assert.Contains(t, text, "Beard")
	assert.Contains(t, text, "15:00")
	assert.Contains(t, text, "2026-10-14")

	assert.Contains(t, CancellationEvent(customer, appt).Text(), "Booking cancelled")
	assert.Contains(t, SweepReportEvent(3).Text(), "3 past appointment(s)")
}

func TestDispatcher_DeliversAsync(t *testing.T) {
	sender := &recordingSender{}
	m := &countingMetrics{}
	d := NewDispatcher(sender, 4, time.Second, m, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	d.Notify(SweepReportEvent(1))
	d.Notify(SweepReportEvent(2))

	require.Eventually(t, func() bool { return len(sender.sent()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, m.get(metrics.ResultSent))

	cancel()
	<-done
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	m := &countingMetrics{}
	d := NewDispatcher(&recordingSender{}, 1, time.Second, m, logger.NewNop())

	d.Notify(SweepReportEvent(1))
	d.Notify(SweepReportEvent(2))

	assert.Equal(t, 1, m.get(metrics.ResultDropped))
}

func TestDispatcher_DrainsOnShutdown(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 4, time.Second, &countingMetrics{}, logger.NewNop())

	d.Notify(SweepReportEvent(1))
	d.Notify(SweepReportEvent(2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Run(ctx)

	assert.Len(t, sender.sent(), 2)
}

func TestDispatcher_SendFailureIsContained(t *testing.T) {
	sender := &recordingSender{err: errors.New("bot blocked")}
	m := &countingMetrics{}
	d := NewDispatcher(sender, 4, time.Second, m, logger.NewNop())

	d.Notify(SweepReportEvent(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Run(ctx)

	assert.Equal(t, 1, m.get(metrics.ResultFailed))
	assert.Empty(t, sender.sent())
}
