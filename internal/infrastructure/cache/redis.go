package cache

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to Redis. The cache is best-effort, so a failed
// connection logs a warning and returns nil; SessionCache treats a nil client
// as a permanent miss.
func NewRedisClient(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("warning: redis connection failed: %v; session caching disabled", err)
		return nil
	}
	log.Printf("connected to redis at %s", addr)
	return client
}
