/*
Package logger 提供 GORM 到 Zap 的日志适配。

每条 SQL 日志带 request_id、actor（user:<id> / admin:<id>）和语句类型，
慢查询阈值来自 database.slow_threshold。
*/
package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petcare/infrastructure/persistence"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowThreshold = 200 * time.Millisecond
	maxLoggedSQL         = 2048
)

// ParseGormLevel maps the database.log_level setting onto gorm levels.
func ParseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "debug", "info":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}

type SQLLoggerConfig struct {
	Level string
	// SlowThreshold 0 uses 200ms; negative disables slow query warnings.
	SlowThreshold time.Duration
}

// SQLLogger implements gorm's logger.Interface on the global zap logger.
// Record-not-found is a normal lookup miss here and is never logged.
type SQLLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewSQLLogger(cfg SQLLoggerConfig) *SQLLogger {
	threshold := cfg.SlowThreshold
	if threshold == 0 {
		threshold = defaultSlowThreshold
	}
	return &SQLLogger{level: ParseGormLevel(cfg.Level), slowThreshold: threshold}
}

func (l *SQLLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *SQLLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		FromContext(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *SQLLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		FromContext(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *SQLLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		FromContext(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *SQLLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	if err != nil && errors.Is(err, gormlogger.ErrRecordNotFound) {
		return
	}

	elapsed := time.Since(begin)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold
	switch {
	case err != nil && l.level >= gormlogger.Error:
	case slow && l.level >= gormlogger.Warn:
	case l.level >= gormlogger.Info:
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("op", statementOp(sql)),
		zap.String("sql", truncateSQL(sql)),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}
	if persistence.TxFromContext(ctx) != nil {
		fields = append(fields, zap.Bool("in_tx", true))
	}
	log := FromContext(ctx)

	switch {
	case err != nil:
		log.Error("Database operation failed", append(fields, zap.Error(err))...)
	case slow:
		log.Warn("Slow SQL query", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	default:
		log.Info("SQL query executed", fields...)
	}
}

// statementOp is the lower-cased leading keyword: select, insert, update, delete...
func statementOp(sql string) string {
	sql = strings.TrimSpace(sql)
	if i := strings.IndexAny(sql, " \n\t("); i > 0 {
		sql = sql[:i]
	}
	return strings.ToLower(sql)
}

func truncateSQL(sql string) string {
	if len(sql) <= maxLoggedSQL {
		return sql
	}
	return sql[:maxLoggedSQL] + "...(truncated)"
}
