package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"petcare/api"
	"petcare/application/scheduler"
	"petcare/config"
	"petcare/infrastructure/persistence/mysql"
	"petcare/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// App 一个进程内同时跑 HTTP、outbox worker 和定时任务
type App struct {
	config    *config.Config
	router    *api.Router
	server    *http.Server
	db        *gorm.DB
	rdb       *redis.Client
	services  *Services
	worker    *mysql.OutboxWorker
	scheduler *scheduler.Scheduler
}

// Bootstrap 管理员表为空时按配置创建超级管理员
func (a *App) Bootstrap(ctx context.Context) error {
	bc := a.config.Bootstrap
	if bc.AdminUsername == "" || bc.AdminPassword == "" {
		return nil
	}
	created, err := a.services.User.EnsureSuperAdmin(ctx, bc.AdminUsername, bc.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Super admin created", zap.String("username", bc.AdminUsername))
	}
	return nil
}

// Run 阻塞到 ctx 取消或任一组件出错，随后优雅关闭
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		timeout := a.config.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		return a.server.Shutdown(shutdownCtx)
	})

	if a.worker != nil {
		g.Go(func() error {
			if err := a.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if a.scheduler != nil {
		g.Go(func() error { return a.scheduler.Run(ctx) })
	}

	return g.Wait()
}

// Close 释放数据库和 Redis 连接
func (a *App) Close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			logger.Warn("Close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Close database", zap.Error(err))
			}
		}
	}
}

// Handler 测试时直接拿 gin 引擎
func (a *App) Handler() http.Handler {
	return a.router.GetEngine()
}
