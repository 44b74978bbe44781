package logger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"petcare/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(Replace(zap.New(core)))
	return logs
}

func TestSQLLoggerLevels(t *testing.T) {
	testCases := []struct {
		name      string
		level     string
		wantInfo  bool
		wantWarn  bool
		wantTrace bool
	}{
		{"warn", "warn", false, true, false},
		{"debug", "debug", true, true, true},
		{"silent", "silent", false, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := observe(t)

			l := NewSQLLogger(SQLLoggerConfig{Level: tc.level})
			l.Info(context.Background(), "migrated %d tables", 3)
			l.Warn(context.Background(), "test warn message")
			l.Trace(context.Background(), time.Now(), func() (string, int64) {
				return "SELECT * FROM pets", 1
			}, nil)

			assert.Equal(t, tc.wantInfo, logs.FilterMessage("migrated 3 tables").Len() == 1)
			assert.Equal(t, tc.wantWarn, logs.FilterMessage("test warn message").Len() == 1)
			traces := logs.FilterMessage("SQL query executed")
			assert.Equal(t, tc.wantTrace, traces.Len() == 1)
			if tc.wantTrace {
				assert.Equal(t, "select", traces.All()[0].ContextMap()["op"])
			}
		})
	}
}

func TestSQLLoggerTagsRequestAndActor(t *testing.T) {
	logs := observe(t)

	l := NewSQLLogger(SQLLoggerConfig{Level: "warn", SlowThreshold: 10 * time.Millisecond})
	ctx := persistence.ContextWithRequestID(context.Background(), "req-1")
	ctx = persistence.ContextWithActor(ctx, "user:u-7")

	l.Trace(ctx, time.Now().Add(-50*time.Millisecond), func() (string, int64) {
		return "UPDATE users SET balance = balance - 100", 1
	}, nil)

	slow := logs.FilterMessage("Slow SQL query").All()
	require.Len(t, slow, 1)
	fields := slow[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user:u-7", fields["actor"])
	assert.Equal(t, "update", fields["op"])
	assert.Equal(t, 10*time.Millisecond, fields["threshold"])
}

func TestSQLLoggerErrors(t *testing.T) {
	logs := observe(t)

	l := NewSQLLogger(SQLLoggerConfig{Level: "error", SlowThreshold: -1})
	l.Trace(context.Background(), time.Now().Add(-time.Hour), func() (string, int64) {
		return "SELECT * FROM pets WHERE id = 'x'", 0
	}, gormlogger.ErrRecordNotFound)
	l.Trace(context.Background(), time.Now().Add(-time.Hour), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO pets (id) VALUES ('p1')", 0
	}, errors.New("boom"))

	assert.Equal(t, 1, logs.Len(), "record not found and disabled slow log stay quiet")
	failed := logs.FilterMessage("Database operation failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "insert", failed[0].ContextMap()["op"])
}

func TestSQLLoggerTruncatesLongStatements(t *testing.T) {
	logs := observe(t)

	long := "INSERT INTO posts (content) VALUES ('" + strings.Repeat("x", 5000) + "')"
	NewSQLLogger(SQLLoggerConfig{Level: "info"}).Trace(context.Background(), time.Now(), func() (string, int64) {
		return long, 1
	}, nil)

	entries := logs.FilterMessage("SQL query executed").All()
	require.Len(t, entries, 1)
	sql := entries[0].ContextMap()["sql"].(string)
	assert.True(t, strings.HasSuffix(sql, "...(truncated)"))
	assert.Less(t, len(sql), len(long))
}

func TestParseGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, ParseGormLevel("DEBUG"))
	assert.Equal(t, gormlogger.Error, ParseGormLevel("error"))
	assert.Equal(t, gormlogger.Silent, ParseGormLevel("silent"))
	assert.Equal(t, gormlogger.Warn, ParseGormLevel("whatever"))
}
