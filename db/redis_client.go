package db

import "errors"

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient defines the methods the DAOs need from Redis.
type RedisClient interface {
	Get(key string) (string, error)
	Keys(pattern string) ([]string, error)
	// ReplaceKeys deletes del and then sets every key in set as one atomic step.
	ReplaceKeys(set map[string]string, del []string) error
	Close() error
}
