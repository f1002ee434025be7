package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogRecorder_Record(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	recorder := NewLogRecorder(zap.New(core))

	callerID := uuid.New()

	t.Run("logs full entry", func(t *testing.T) {
		recorder.Record(context.Background(), Entry{
			Action:   "find_all_unscoped",
			Table:    "benefit_requests",
			CallerID: callerID,
			Reason:   "quarterly program export",
		})

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "scope bypass", entries[0].Message)

		fields := entries[0].ContextMap()
		assert.Equal(t, "find_all_unscoped", fields["action"])
		assert.Equal(t, "benefit_requests", fields["table"])
		assert.Equal(t, callerID.String(), fields["caller_id"])
		assert.Equal(t, "quarterly program export", fields["reason"])
	})

	t.Run("omits empty caller and reason", func(t *testing.T) {
		recorder.Record(context.Background(), Entry{
			Action: "count_unscoped",
			Table:  "payment_orders",
		})

		entries := logs.TakeAll()
		require.Len(t, entries, 1)

		fields := entries[0].ContextMap()
		assert.NotContains(t, fields, "caller_id")
		assert.NotContains(t, fields, "reason")
	})
}

func TestNopRecorder(t *testing.T) {
	// Must not panic with a zero entry
	NopRecorder{}.Record(context.Background(), Entry{})
}
