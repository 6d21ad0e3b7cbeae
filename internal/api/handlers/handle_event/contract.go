package handle_event

import (
	"context"

	"github.com/m04kA/SMC-BarberBot/internal/conversation"
)

type ConversationMachine interface {
	Handle(ctx context.Context, ev conversation.Event) (conversation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
