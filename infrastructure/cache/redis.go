// Package cache holds the Redis-backed helpers: post view dedupe and the
// fixed-window limiter used on login and register.
package cache

import (
	"context"
	"fmt"
	"time"

	"petcare/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis 通过 go-redis v8 连接 Redis，并做一次 Ping 验证。
func InitRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// ViewWindow is how long one viewer's visit to a post counts once.
const ViewWindow = 10 * time.Minute

// ViewTracker remembers recent (post, viewer) pairs.
type ViewTracker struct {
	rdb    *redis.Client
	window time.Duration
}

func NewViewTracker(rdb *redis.Client) *ViewTracker {
	return &ViewTracker{rdb: rdb, window: ViewWindow}
}

// FirstView reports whether viewer has not seen post within the window and
// starts a new window when so.
func (t *ViewTracker) FirstView(ctx context.Context, postID, viewer string) (bool, error) {
	key := fmt.Sprintf("view:post:%s:%s", postID, viewer)
	return t.rdb.SetNX(ctx, key, 1, t.window).Result()
}

// Limiter is a fixed-window counter: INCR, with the TTL set on the first hit.
type Limiter struct {
	rdb    *redis.Client
	prefix string
}

func NewLimiter(rdb *redis.Client, prefix string) *Limiter {
	return &Limiter{rdb: rdb, prefix: prefix}
}

// Allow counts one hit for key and reports whether it is within limit.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	rkey := fmt.Sprintf("rl:%s:%s", l.prefix, key)
	cnt, err := l.rdb.Incr(ctx, rkey).Result()
	if err != nil {
		return false, err
	}
	// 第一次自增时同时设置 TTL 窗口
	if cnt == 1 {
		if err := l.rdb.Expire(ctx, rkey, window).Err(); err != nil {
			return false, err
		}
	}
	return cnt <= int64(limit), nil
}
