// Package scheduler 定时任务：关闭超时未支付的商城订单、清理已投递的 outbox 事件。
package scheduler

import (
	"context"
	"fmt"
	"time"

	"petcare/config"
	"petcare/pkg/logger"
	"petcare/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	JobCancelExpiredOrders = "cancel_expired_orders"
	JobPurgeOutbox         = "purge_outbox"

	jobTimeout = 5 * time.Minute
)

type OrderCanceller interface {
	CancelExpired(ctx context.Context, timeout time.Duration) (int, error)
}

type OutboxPurger interface {
	PurgePublished(ctx context.Context, before time.Time) (int64, error)
}

type Scheduler struct {
	cfg       config.SchedulerConfig
	retention time.Duration
	orders    OrderCanceller
	outbox    OutboxPurger
	cron      *cron.Cron
	now       func() time.Time
}

func New(cfg config.SchedulerConfig, retention time.Duration, orders OrderCanceller, outbox OutboxPurger) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		retention: retention,
		orders:    orders,
		outbox:    outbox,
		cron:      cron.New(cron.WithSeconds()),
		now:       time.Now,
	}
}

// Run 注册任务并阻塞到 ctx 结束，退出前等待正在执行的任务完成
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.CancelSpec, func() { s.runJob(ctx, JobCancelExpiredOrders, s.CancelExpiredOrders) }); err != nil {
		return fmt.Errorf("schedule %s: %w", JobCancelExpiredOrders, err)
	}
	if s.retention > 0 {
		if _, err := s.cron.AddFunc(s.cfg.PurgeSpec, func() { s.runJob(ctx, JobPurgeOutbox, s.PurgeOutbox) }); err != nil {
			return fmt.Errorf("schedule %s: %w", JobPurgeOutbox, err)
		}
	}

	s.cron.Start()
	logger.Info("Scheduler started",
		zap.String("cancel_spec", s.cfg.CancelSpec),
		zap.String("purge_spec", s.cfg.PurgeSpec),
		zap.Duration("order_timeout", s.cfg.OrderTimeout),
	)

	<-ctx.Done()
	<-s.cron.Stop().Done()
	logger.Info("Scheduler stopped")
	return nil
}

func (s *Scheduler) runJob(parent context.Context, name string, job func(context.Context) error) {
	ctx, cancel := context.WithTimeout(parent, jobTimeout)
	defer cancel()

	if err := job(ctx); err != nil {
		metrics.ScheduledJobs.WithLabelValues(name, "failed").Inc()
		logger.Error("Scheduled job failed", zap.String("job", name), zap.Error(err))
		return
	}
	metrics.ScheduledJobs.WithLabelValues(name, "success").Inc()
}

func (s *Scheduler) CancelExpiredOrders(ctx context.Context) error {
	n, err := s.orders.CancelExpired(ctx, s.cfg.OrderTimeout)
	if n > 0 {
		logger.Info("Cancelled expired mall orders", zap.Int("count", n))
	}
	return err
}

func (s *Scheduler) PurgeOutbox(ctx context.Context) error {
	n, err := s.outbox.PurgePublished(ctx, s.now().Add(-s.retention))
	if n > 0 {
		logger.Info("Purged published outbox events", zap.Int64("count", n))
	}
	return err
}
