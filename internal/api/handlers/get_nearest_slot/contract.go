package get_nearest_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

type Availability interface {
	NearestSlot(ctx context.Context) (domain.NearestSlot, bool, error)
}

type Clock interface {
	Today() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
