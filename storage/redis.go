package storage

import (
	"cblls_server/lib"
	"cblls_server/structs"
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps the documents in Redis. Documents are written
// without TTL; this is durable storage, not a cache.
type RedisBackend struct {
	client *redis.Client
	quota  int64
}

func OpenRedis(cfg *structs.StorageConfig) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,

		// Connection pool settings
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// Timeouts
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		MaxRetries: cfg.MaxRetries,
	})

	rb := &RedisBackend{client: client, quota: cfg.QuotaBytes}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rb.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rb, nil
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (rb *RedisBackend) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors
		if !isRetryableError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt) // exponential
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		_, err = rand.Read(jitterBytes)
		if err != nil {
			// fallback to no jitter if random fails
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)
		backoffWithJitter := backoff/2 + jitter

		time.Sleep(time.Duration(backoffWithJitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableError determines if an error is worth retrying
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry on nil results (key not found)
	if err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

func (rb *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var result []byte
	var found bool

	err := rb.withRetry(func() error {
		val, err := rb.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			found = false
			return nil // don't retry on key not found
		}
		if err != nil {
			return err
		}
		result = val
		found = true
		return nil
	}, 3)
	if err != nil {
		return nil, false, err
	}

	return result, found, nil
}

func (rb *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if rb.quota > 0 && int64(len(value)) > rb.quota {
		return lib.ErrStorageFull
	}

	return rb.withRetry(func() error {
		return rb.client.Set(ctx, key, value, 0).Err()
	}, 3)
}

func (rb *RedisBackend) Delete(ctx context.Context, key string) error {
	return rb.withRetry(func() error {
		return rb.client.Del(ctx, key).Err()
	}, 3)
}

func (rb *RedisBackend) Ping(ctx context.Context) error {
	return rb.withRetry(func() error {
		return rb.client.Ping(ctx).Err()
	}, 3)
}

func (rb *RedisBackend) Close() error {
	return rb.client.Close()
}
