package lock

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix    = "lock:"
	defaultRetryDelay = 20 * time.Millisecond
	unlockTimeout     = 2 * time.Second
)

// 自分のtokenのときだけ消す
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

var ErrLockNotHeld = errors.New("lock not held")

// 複数インスタンス構成用。SET NX + TTL で取り、Luaで解放する。
// TTLは処理がハングしたときの保険で、通常はUnlockで解放される。
type RedisLocker struct {
	client     *redis.Client
	ttl        time.Duration
	retryDelay time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:     client,
		ttl:        ttl,
		retryDelay: defaultRetryDelay,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	redisKey := redisKeyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		t := time.NewTimer(l.retryDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			uctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
			defer cancel()

			if err := l.release(uctx, redisKey, token); err != nil {
				slog.Warn("release lock failed", "key", key, "error", err)
			}
		})
	}, nil
}

func (l *RedisLocker) release(ctx context.Context, redisKey, token string) error {
	n, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		// TTL切れで他の人が取った
		return ErrLockNotHeld
	}
	return nil
}
