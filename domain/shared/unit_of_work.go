package shared

import (
	"context"
	"time"
)

// UnitOfWork 管理事务边界与聚合事件收集。
// 一个 UnitOfWork 只服务一次业务操作，不要在并发请求间共享。
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

type UnitOfWorkFactory interface {
	New() UnitOfWork
}

type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
	PurgePublished(ctx context.Context, before time.Time) (int64, error)
}
