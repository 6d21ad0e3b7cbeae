package notify

import "context"

// Sender интерфейс канала доставки уведомлений оператору
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Metrics интерфейс учета результатов доставки
type Metrics interface {
	IncNotification(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
