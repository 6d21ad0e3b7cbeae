package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultSweepSchedule ежедневно в 03:12 по времени магазина
	DefaultSweepSchedule = "12 3 * * *"

	defaultSweepTimeout = time.Minute
)

// Scheduler запускает ежедневную очистку по cron расписанию в зоне магазина
type Scheduler struct {
	cron    *cron.Cron
	sweeper SweepUseCase
	timeout time.Duration
	logger  Logger
}

// New создает планировщик; пустое расписание заменяется на DefaultSweepSchedule
func New(loc *time.Location, schedule string, timeout time.Duration, sweeper SweepUseCase, logger Logger) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	if timeout <= 0 {
		timeout = defaultSweepTimeout
	}

	adapter := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(adapter),
		cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
	)

	s := &Scheduler{
		cron:    c,
		sweeper: sweeper,
		timeout: timeout,
		logger:  logger,
	}

	if _, err := c.AddFunc(schedule, func() { s.RunSweep(context.Background()) }); err != nil {
		return nil, fmt.Errorf("scheduler: invalid sweep schedule %q: %w", schedule, err)
	}

	return s, nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler: started, next sweep at %s", s.NextRun().Format(time.RFC3339))
}

// Stop останавливает планировщик и ждет завершения текущей очистки
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler: stopped")
	case <-ctx.Done():
		s.logger.Warn("Scheduler: stop timed out: %v", ctx.Err())
	}
}

// NextRun время следующего запуска очистки
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if !entries[0].Next.IsZero() {
		return entries[0].Next
	}
	return entries[0].Schedule.Next(time.Now().In(s.cron.Location()))
}

// RunSweep выполняет одну очистку; ошибка логируется и не пробрасывается
func (s *Scheduler) RunSweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.sweeper.Execute(ctx)
	if err != nil {
		s.logger.Error("Scheduler: sweep failed, will retry on next run: %v", err)
		return
	}
	s.logger.Info("Scheduler: sweep removed %d appointment(s)", resp.Deleted)
}

// cronLogger адаптирует Logger к интерфейсу cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("cron: %s%s", msg, formatKeysAndValues(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v%s", msg, err, formatKeysAndValues(keysAndValues))
}

func formatKeysAndValues(kv []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
