package notify

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBot/pkg/metrics"
)

const (
	defaultQueueSize = 64
	defaultTimeout   = 5 * time.Second
)

// Dispatcher доставляет уведомления асинхронно, не блокируя вызывающего
// Ошибки доставки логируются и не возвращаются
type Dispatcher struct {
	sender  Sender
	queue   chan Event
	timeout time.Duration
	metrics Metrics
	logger  Logger
}

// NewDispatcher создает диспетчер с очередью queueSize и таймаутом на одну отправку
func NewDispatcher(sender Sender, queueSize int, timeout time.Duration, m Metrics, logger Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{
		sender:  sender,
		queue:   make(chan Event, queueSize),
		timeout: timeout,
		metrics: m,
		logger:  logger,
	}
}

// Notify ставит событие в очередь; при заполненной очереди событие отбрасывается
func (d *Dispatcher) Notify(event Event) {
	select {
	case d.queue <- event:
	default:
		d.logger.Warn("Notify: queue is full, dropping %s event", event.Kind)
		d.metrics.IncNotification(metrics.ResultDropped)
	}
}

// Run обрабатывает очередь до отмены ctx, затем досылает оставшиеся события
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case event := <-d.queue:
			d.send(ctx, event)
		case <-ctx.Done():
			d.drain(context.WithoutCancel(ctx))
			return
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case event := <-d.queue:
			d.send(ctx, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, event Event) {
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.sender.Send(sendCtx, event.Text()); err != nil {
		d.logger.Error("Notify: failed to deliver %s event: %v", event.Kind, err)
		d.metrics.IncNotification(metrics.ResultFailed)
		return
	}

	d.logger.Info("Notify: %s event delivered", event.Kind)
	d.metrics.IncNotification(metrics.ResultSent)
}

// LogSender пишет уведомления в лог, когда канал оператора не настроен
type LogSender struct {
	Logger Logger
}

func (s LogSender) Send(_ context.Context, text string) error {
	s.Logger.Info("Notify: operator channel disabled, message: %q", text)
	return nil
}
