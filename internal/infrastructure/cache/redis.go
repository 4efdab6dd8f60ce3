package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// OpenRedis connects and pings within ctx (bounded by pingTimeout). The
// client is closed again when the ping fails.
func OpenRedis(ctx context.Context, addr string, db int, log *zap.Logger) (*redis.Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	start := time.Now()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	log.Info("redis connected", zap.String("addr", addr), zap.Int("db", db), zap.Duration("ping", time.Since(start)))
	return rdb, nil
}
