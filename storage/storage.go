package storage

import (
	"cblls_server/config"
	"context"
	"fmt"
	"log"
)

// Document keys for the durable collections. Each key addresses one
// independently serialized document.
const (
	KeyProducts = "cblls_products_local"
	KeyConfig   = "cblls_config_local"
	KeySession  = "cblls_user_session"
	KeyAccounts = "cblls_accounts"
	KeyTokens   = "cblls_account_tokens"
)

// Backend is a durable key/value document store. Writes are
// last-writer-wins; there is no optimistic concurrency check.
type Backend interface {
	// Get returns the stored document and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set persists the document. Returns lib.ErrStorageFull when the
	// write would exceed the configured quota.
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

var instance Backend

// Open creates a backend for the configured storage driver.
func Open() (Backend, error) {
	cfg := config.GetConfig().Storage

	switch cfg.Driver {
	case "file":
		return OpenFile(cfg.DataDir, cfg.QuotaBytes)
	case "redis":
		return OpenRedis(cfg)
	case "postgres":
		return OpenPostgres(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Initialize sets up the global storage backend using centralized configuration
func Initialize() error {
	backend, err := Open()
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	instance = backend
	return nil
}

// GetInstance returns the global storage backend.
// This is the primary way to access durable storage throughout the application
func GetInstance() Backend {
	if instance == nil {
		log.Fatal("Storage backend is not initialized. Call Initialize() first.")
	}
	return instance
}

// CloseInstance closes the global storage backend
func CloseInstance() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}
