package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"attendance-service/internal/config"
)

// NewRedis connects to redis. A nil client and nil error mean redis is disabled.
func NewRedis(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	if !cfg.Enabled {
		log.Info("Redis disabled, tick locks are process-local")
		return nil, nil
	}

	var client *redis.Client
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info("Redis connection established successfully",
		zap.String("addr", client.Options().Addr),
		zap.Int("db", client.Options().DB),
	)
	return client, nil
}

// releaseScript deletes the lock only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// TickLock keeps a periodic job from running on more than one replica at a time
type TickLock struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewTickLock creates a TickLock. With a nil client every Acquire succeeds.
func NewTickLock(client *redis.Client, prefix string, logger *zap.Logger) *TickLock {
	return &TickLock{client: client, prefix: prefix, logger: logger}
}

// Acquire takes the named lock for at most ttl.
// ok is false when another holder has it; release is always safe to call.
func (l *TickLock) Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error) {
	noop := func() {}
	if l == nil || l.client == nil {
		return noop, true, nil
	}

	key := l.prefix + name
	token := uuid.NewString()

	ok, err = l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return noop, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return noop, false, nil
	}

	release = func() {
		// the tick context may already be done
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			l.logger.Warn("Failed to release tick lock", zap.String("key", key), zap.Error(err))
		}
	}
	return release, true, nil
}
