package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// contextKey adalah tipe privat agar tidak terjadi tabrakan key dengan library lain
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	actorKey     contextKey = "actor"
	loggerKey    contextKey = "logger"
)

// Actor adalah identitas pemanggil yang sudah tervalidasi oleh middleware.
// Di-thread secara eksplisit, bukan state global per-request.
type Actor struct {
	UserID string
	Role   string
}

// --- Request ID Helpers ---

// WithRequestID memasukkan Request ID ke dalam context
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID mengambil Request ID dari context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// --- Actor Helpers ---

// WithActor memasukkan identitas pemanggil ke dalam context
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor mengambil identitas pemanggil dari context
func GetActor(ctx context.Context) Actor {
	if a, ok := ctx.Value(actorKey).(Actor); ok {
		return a
	}
	return Actor{}
}

// --- Logger Helpers ---

// WithLogger memasukkan zap logger (yang biasanya sudah di-decorate) ke context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger mengambil logger dari context.
// Jika tidak ada, mengembalikan fallback (defaultLogger) agar tidak panic.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	// safety fallback agar tidak pernah nil
	return zap.NewNop()
}
