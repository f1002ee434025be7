// Package audit records security-relevant events, in particular every use of
// the scoped data-access engine's unscoped escape hatches. Delivery is
// fire-and-forget: a failed or dropped audit entry never fails the operation
// that produced it.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry describes a single auditable event
type Entry struct {
	Action   string    // e.g. "find_all_unscoped"
	Table    string    // target table name
	CallerID uuid.UUID // authenticated principal, uuid.Nil when none installed
	Reason   string    // caller-supplied bypass reason, may be empty
	At       time.Time
}

// Recorder consumes audit entries
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// LogRecorder writes audit entries to a zap logger
type LogRecorder struct {
	logger *zap.Logger
}

// NewLogRecorder creates a Recorder backed by the given logger
func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	return &LogRecorder{logger: logger.Named("audit")}
}

// Record implements Recorder
func (r *LogRecorder) Record(_ context.Context, entry Entry) {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}

	fields := []zap.Field{
		zap.String("action", entry.Action),
		zap.String("table", entry.Table),
		zap.Time("at", entry.At),
	}
	if entry.CallerID != uuid.Nil {
		fields = append(fields, zap.String("caller_id", entry.CallerID.String()))
	}
	if entry.Reason != "" {
		fields = append(fields, zap.String("reason", entry.Reason))
	}

	r.logger.Warn("scope bypass", fields...)
}

// NopRecorder discards all entries
type NopRecorder struct{}

// Record implements Recorder
func (NopRecorder) Record(context.Context, Entry) {}

var _ Recorder = (*LogRecorder)(nil)
var _ Recorder = NopRecorder{}
