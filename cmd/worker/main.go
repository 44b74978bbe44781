package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"petcare/cmd"
	"petcare/config"
	"petcare/infrastructure/persistence/mysql"
	"petcare/pkg/logger"
	"petcare/pkg/token"

	"go.uber.org/zap"
)

// 独立部署的 outbox worker，HTTP 进程里关掉 worker.enabled 时使用
func main() {
	if err := run(); err != nil {
		fmt.Printf("Worker startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := cmd.NewMySQLConfig(cfg).Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	repos := mysql.NewRepositories(db)
	services := cmd.NewServices(cfg, repos, mysql.NewUnitOfWorkFactory(db, cmd.NewRetryConfig(cfg)), cmd.Infra{
		Tokens: token.NewManager(cfg.JWT),
	})
	dispatcher, err := cmd.NewEventDispatcher(services)
	if err != nil {
		return fmt.Errorf("failed to register event handlers: %w", err)
	}

	worker, err := mysql.NewOutboxWorker(
		repos.Outbox,
		dispatcher,
		cfg.Worker.PollInterval,
		cfg.Worker.BatchSize,
		cfg.Worker.MaxRetries,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox worker: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Outbox worker started",
		zap.Duration("poll_interval", cfg.Worker.PollInterval),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
	)

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("outbox worker exited with error: %w", err)
	}

	logger.Info("Outbox worker stopped")
	return nil
}

func parseConfigPath() string {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()
	return configPath
}
