package db

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

const (
	LockKeyPrefix    = "threadsum:lock:"
	lockPollInterval = 100 * time.Millisecond
)

// ConnectRedis connects the shared client. An empty redisURL leaves Redis
// disabled and returns false.
func ConnectRedis(ctx context.Context, redisURL string) (bool, error) {
	if redisURL == "" {
		return false, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	if _, err := Redis.Ping(ctx).Result(); err != nil {
		return false, err
	}
	return true, nil
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// unlockScript deletes the key only while it still holds our token, so an
// expired lock taken over by another process is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a SET NX lock keyed per cache entry. It serializes
// computation of the same summary across API processes.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

// Lock blocks until the lock for key is held or ctx is done. The returned
// func releases it.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token, err := newLockToken()
	if err != nil {
		return nil, err
	}

	redisKey := LockKeyPrefix + key
	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	unlock := func() {
		// The request context may already be cancelled here.
		err := unlockScript.Run(context.Background(), l.client, []string{redisKey}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			slog.Error("error releasing redis lock", "key", key, "error", err)
		}
	}
	return unlock, nil
}

func newLockToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
