package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// GoRedisClient struct holds the Redis client and context
type GoRedisClient struct {
	client *redis.Client
	ctx    context.Context
	logger *zap.Logger
}

// NewGoRedisClient wraps a go-redis client and checks the connection.
func NewGoRedisClient(ctx context.Context, client *redis.Client, logger *zap.Logger) (*GoRedisClient, error) {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	logger.Info("Connected to Redis", zap.String("addr", client.Options().Addr))

	return &GoRedisClient{
		client: client,
		ctx:    ctx,
		logger: logger,
	}, nil
}

// Get retrieves the value for a given key from Redis
func (r *GoRedisClient) Get(key string) (string, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return val, err
}

// Keys lists keys matching a glob pattern.
func (r *GoRedisClient) Keys(pattern string) ([]string, error) {
	return r.client.Keys(r.ctx, pattern).Result()
}

// ReplaceKeys runs the deletes and sets in one MULTI/EXEC transaction.
func (r *GoRedisClient) ReplaceKeys(set map[string]string, del []string) error {
	_, err := r.client.TxPipelined(r.ctx, func(pipe redis.Pipeliner) error {
		if len(del) > 0 {
			pipe.Del(r.ctx, del...)
		}
		for key, value := range set {
			pipe.Set(r.ctx, key, value, 0)
		}
		return nil
	})
	return err
}

func (r *GoRedisClient) Close() error {
	return r.client.Close()
}
