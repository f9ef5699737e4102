package store

import (
	"time"

	"go.uber.org/zap"
)

// DispatchEvent captures one dispatched action for diagnostics.
type DispatchEvent struct {
	Action   string
	Applied  bool
	Duration time.Duration
	Events   int
	Projects int
}

// DispatchObserver receives an event after every dispatch.
type DispatchObserver interface {
	ObserveDispatch(event DispatchEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveDispatch(DispatchEvent) {}

type logObserver struct {
	logger *zap.Logger
}

// NewLogObserver logs every dispatch at debug level. Actions the reducer
// absorbed as no-ops are logged as "dispatch ignored".
func NewLogObserver(logger *zap.Logger) DispatchObserver {
	if logger == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: logger.Named("store")}
}

func (o *logObserver) ObserveDispatch(event DispatchEvent) {
	fields := []zap.Field{
		zap.String("action", event.Action),
		zap.Bool("applied", event.Applied),
		zap.Duration("duration", event.Duration),
		zap.Int("events", event.Events),
		zap.Int("projects", event.Projects),
	}
	if !event.Applied {
		o.logger.Debug("dispatch ignored", fields...)
		return
	}
	o.logger.Debug("dispatch", fields...)
}
