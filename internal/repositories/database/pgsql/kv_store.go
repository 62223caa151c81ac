package pgsql

import (
	"context"
	"errors"
	"fmt"

	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// KVStore keeps key-value entries in the kv_entries table.
type KVStore struct {
	BaseRepository
}

// NewKVStore creates a store on an existing pool. The schema is created by migrations.
func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return &KVStore{BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.KeyValueStore = (*KVStore)(nil)
	_ portsrepo.BatchWriter   = (*KVStore)(nil)
)

const upsertEntryQuery = `
	INSERT INTO kv_entries (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE SET
		value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at;
`

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.Pool.QueryRow(ctx, `SELECT value FROM kv_entries WHERE key = $1;`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.Pool.Exec(ctx, upsertEntryQuery, key, value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.Pool.Exec(ctx, `DELETE FROM kv_entries WHERE key = $1;`, key); err != nil {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}

// SetMany upserts all entries in one transaction.
func (s *KVStore) SetMany(ctx context.Context, entries map[string]string) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for k, v := range entries {
			batch.Queue(upsertEntryQuery, k, v)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to upsert batch: %w", err)
		}
		return nil
	})
}
