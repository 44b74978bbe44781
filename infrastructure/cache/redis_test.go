package cache

import (
	"context"
	"testing"
	"time"

	"petcare/config"

	"github.com/stretchr/testify/assert"
)

func TestInitRedis_FailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := InitRedis(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
	assert.Nil(t, rdb)
	assert.Contains(t, err.Error(), "redis ping")
}
