package ratelimit

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisWindow is a sliding window over a Redis sorted set per sender, scored
// by send time. The trim/add/count run in one transaction; an over-limit add
// removes its own member so a denied attempt never occupies a slot.
type RedisWindow struct {
	rdb   *redis.Client
	limit int
	span  time.Duration
}

func NewRedisWindow(rdb *redis.Client, limit int, span time.Duration) *RedisWindow {
	return &RedisWindow{rdb: rdb, limit: limit, span: span}
}

// Connect initializes a Redis client from environment variables:
//   - REDIS_ADDR (e.g. "localhost:6379")
//   - REDIS_DB (optional, default 0)
func Connect(ctx context.Context) (*redis.Client, error) {
	addr := os.Getenv("REDIS_ADDR")
	dbIdx := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", s, err)
		}
		dbIdx = v
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func (l *RedisWindow) Allow(ctx context.Context, user uuid.UUID, now time.Time) (bool, error) {
	key := "mutuals:sendreq:" + user.String()
	member := uuid.NewString()
	cutoff := now.Add(-l.span).UnixMilli()

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("(%d", cutoff))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: member})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.span)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate window update: %w", err)
	}

	if card.Val() > int64(l.limit) {
		if err := l.rdb.ZRem(ctx, key, member).Err(); err != nil {
			return false, fmt.Errorf("rate window rollback: %w", err)
		}
		return false, nil
	}
	return true, nil
}
