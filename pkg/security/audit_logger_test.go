package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedAuditLogger() (*AuditLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewAuditLoggerWithZap(zap.New(core), "jobboard-api", "test"), logs
}

func TestAuditLogger_LogStatusChange(t *testing.T) {
	t.Run("Should record revocation as a separate warn event", func(t *testing.T) {
		al, logs := newObservedAuditLogger()

		al.LogStatusChange(context.Background(), "rec-1", "job-1", "cand-1", "hired", "rejected", true)

		entries := logs.All()
		require.Len(t, entries, 2)
		assert.Equal(t, string(EventStatusChanged), entries[0].Message)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, string(EventHireRevoked), entries[1].Message)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	})

	t.Run("Should hash actor id", func(t *testing.T) {
		al, logs := newObservedAuditLogger()

		al.LogStatusChange(context.Background(), "rec-1", "job-1", "cand-1", "applied", "hired", false)

		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, HashValue("rec-1"), fields["actor"])
	})
}

func TestAuditLogger_NilIsNoop(t *testing.T) {
	var al *AuditLogger
	assert.NotPanics(t, func() {
		al.LogMalwareDetected(context.Background(), "c", "clamav", "Eicar")
		_ = al.Sync()
	})
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***", MaskEmail("a"))
}

func TestSeverityOf(t *testing.T) {
	assert.Equal(t, SeverityCRITICAL, SeverityOf(EventMalwareDetected))
	assert.Equal(t, SeverityWARN, SeverityOf(EventType("unknown")))
}
