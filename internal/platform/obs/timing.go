package obs

import (
	"context"
	"ev-route-service/internal/platform/logger"
	"sync"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

var (
	newTimingLog = func() logger.Logger { return logger.New("obs") }
	timingLogMu  sync.Mutex
	timingLog    logger.Logger
)

// log builds the timing logger on first use, after the environment is loaded.
func log() logger.Logger {
	timingLogMu.Lock()
	defer timingLogMu.Unlock()
	if timingLog == nil {
		timingLog = newTimingLog()
	}
	return timingLog
}

// WithRequestID stores the request id used to correlate timing lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Time logs the duration of an operation when the returned func is deferred.
//
//	defer obs.Time(ctx, "ors.geocode")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		fields := map[string]any{
			"req_id": reqID,
			"op":     name,
			"dur_ms": time.Since(start).Milliseconds(),
		}

		if errp != nil && *errp != nil {
			fields["err"] = (*errp).Error()
			log().Infow("op failed", fields)
			return
		}
		log().Debugw("op done", fields)
	}
}
