// Package retry re-runs a unit of work when the optimistic lock or MySQL
// reports a transient conflict. Business errors and unique-key conflicts
// (already liked, already signed in) are final and surface on the first try.
package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"petcare/config"
	"petcare/domain/shared"
	"petcare/pkg/logger"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Reason 可重试错误的分类，空值表示不重试
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonVersion        Reason = "version_conflict"
	ReasonDeadlock       Reason = "deadlock"
	ReasonLockTimeout    Reason = "lock_timeout"
	ReasonConnectionLost Reason = "connection_lost"
)

// MySQL server error numbers
const (
	errDuplicateEntry  = 1062
	errLockWaitTimeout = 1205
	errDeadlock        = 1213
)

type Config struct {
	Enabled                       bool
	MaxAttempts                   int
	InitialDelay                  time.Duration
	MaxDelay                      time.Duration
	BackoffFactor                 float64
	JitterEnabled                 bool
	RetryOnConcurrentModification bool
	RetryOnDeadlock               bool
	RetryOnLockTimeout            bool
}

var DefaultConfig = Config{
	Enabled:                       true,
	MaxAttempts:                   3,
	InitialDelay:                  100 * time.Millisecond,
	MaxDelay:                      2 * time.Second,
	BackoffFactor:                 2.0,
	JitterEnabled:                 true,
	RetryOnConcurrentModification: true,
	RetryOnDeadlock:               true,
	RetryOnLockTimeout:            true,
}

// FromConfig maps the database.retry section.
func FromConfig(c config.RetryConfig) Config {
	return Config{
		Enabled:                       c.Enabled,
		MaxAttempts:                   c.MaxAttempts,
		InitialDelay:                  c.InitialDelay,
		MaxDelay:                      c.MaxDelay,
		BackoffFactor:                 c.BackoffFactor,
		JitterEnabled:                 c.JitterEnabled,
		RetryOnConcurrentModification: c.RetryOnConcurrentModification,
		RetryOnDeadlock:               c.RetryOnDeadlock,
		RetryOnLockTimeout:            c.RetryOnLockTimeout,
	}
}

// Classify names why err is worth another attempt.
func Classify(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	if errors.Is(err, shared.ErrConcurrentModification) {
		return ReasonVersion
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return ReasonNone
	}

	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case errDeadlock:
			return ReasonDeadlock
		case errLockWaitTimeout:
			return ReasonLockTimeout
		case errDuplicateEntry:
			return ReasonNone
		}
		return ReasonNone
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysqlDriver.ErrInvalidConn) {
		return ReasonConnectionLost
	}

	// sqlite 与被包装成字符串的驱动错误
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deadlock"), strings.Contains(msg, "database is locked"):
		return ReasonDeadlock
	case strings.Contains(msg, "lock wait timeout"):
		return ReasonLockTimeout
	}
	return ReasonNone
}

func (c Config) allows(r Reason) bool {
	switch r {
	case ReasonVersion:
		return c.RetryOnConcurrentModification
	case ReasonDeadlock:
		return c.RetryOnDeadlock
	case ReasonLockTimeout:
		return c.RetryOnLockTimeout
	case ReasonConnectionLost:
		return true
	default:
		return false
	}
}

func IsRetryableError(err error, cfg Config) bool {
	return cfg.allows(Classify(err))
}

// Backoff is the wait before attempt+1: InitialDelay * BackoffFactor^(attempt-1),
// capped at MaxDelay, with ±20% jitter when enabled.
func Backoff(attempt int, cfg Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(cfg.InitialDelay) * math.Pow(cfg.BackoffFactor, float64(attempt-1))
	delay = math.Min(delay, float64(cfg.MaxDelay))
	if cfg.JitterEnabled {
		delay *= 0.8 + rand.Float64()*0.4
	}
	return time.Duration(math.Max(delay, 0))
}

// ExecuteWithRetry runs fn up to MaxAttempts times. Each retry is logged with
// its reason; the last error is returned unchanged.
func ExecuteWithRetry(ctx context.Context, cfg Config, fn func(ctx context.Context) error) error {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return fn(ctx)
	}

	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		reason := Classify(err)
		if !cfg.allows(reason) || attempt >= cfg.MaxAttempts {
			return err
		}

		delay := Backoff(attempt, cfg)
		logger.FromContext(ctx).Warn("Retrying unit of work",
			zap.String("reason", string(reason)),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}
