package storage

import (
	"cblls_server/lib"
	"cblls_server/structs"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	Key       string    `bun:"key,pk"`
	Value     []byte    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()"`
}

// PostgresBackend keeps the documents in a single key/value table.
// Writes are plain upserts, so concurrent writers remain
// last-writer-wins just like the other backends.
type PostgresBackend struct {
	db    *bun.DB
	quota int64
}

func OpenPostgres(cfg *structs.StorageConfig) (*PostgresBackend, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN)))
	db := bun.NewDB(sqldb, pgdialect.New())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*document)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return &PostgresBackend{db: db, quota: cfg.QuotaBytes}, nil
}

func (pb *PostgresBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	doc := new(document)
	err := pb.db.NewSelect().Model(doc).Where("key = ?", key).Scan(ctx)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Value, true, nil
}

func (pb *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	if pb.quota > 0 && int64(len(value)) > pb.quota {
		return lib.ErrStorageFull
	}

	doc := &document{Key: key, Value: value, UpdatedAt: time.Now()}
	_, err := pb.db.NewInsert().
		Model(doc).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (pb *PostgresBackend) Delete(ctx context.Context, key string) error {
	_, err := pb.db.NewDelete().Model((*document)(nil)).Where("key = ?", key).Exec(ctx)
	return err
}

func (pb *PostgresBackend) Ping(ctx context.Context) error {
	return pb.db.PingContext(ctx)
}

func (pb *PostgresBackend) Close() error {
	return pb.db.Close()
}
