package utils

import (
	"context"
	"fmt"
	"time"

	"servicehub/config"

	"github.com/go-redis/redis/v8"
)

var (
	// LockClient backs the distributed entity locks.
	LockClient *redis.Client
)

// InitLockClient connects the Redis client used for entity locks.
func InitLockClient() (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (locks): %w", err)
	}
	LockClient = client
	return client, nil
}
