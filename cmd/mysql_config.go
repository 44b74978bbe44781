package cmd

import (
	"petcare/config"
	"petcare/infrastructure/persistence/mysql"
	"petcare/infrastructure/persistence/retry"
)

func NewMySQLConfig(cfg *config.Config) *mysql.Config {
	return &mysql.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		LogLevel:        cfg.Database.LogLevel,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		SlowThreshold:   cfg.Database.SlowThreshold,
	}
}

// NewRetryConfig 乐观锁冲突/死锁时 UoW 的重试策略
func NewRetryConfig(cfg *config.Config) retry.Config {
	return retry.FromConfig(cfg.Database.Retry)
}
