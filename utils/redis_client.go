package utils

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scribehq/scribe/config"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// GetRedis returns a lazily created Redis client from the loaded config,
// or nil when Redis is unreachable at first use. Callers treat a nil
// client as "no Redis": caching degrades to a miss and token revocation
// falls back to the in-process blacklist.
func GetRedis() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.Get()
		client := redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			if Sugar != nil {
				Sugar.Warnf("redis unavailable, using in-process cache/revocation fallback: %v", err)
			}
			_ = client.Close()
			return
		}
		redisClient = client
	})
	return redisClient
}
