package keyvalue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
)

// BaseRepository provides common functionality for all key-value repositories
type BaseRepository struct {
	Store portsrepo.KeyValueStore
}

// getJSON decodes the value under key into out.
// It reports false when the key is absent or holds data that does not decode;
// corrupt data is logged and treated as "no data yet".
func (r *BaseRepository) getJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, ok, err := r.Store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w: %w", key, apperrors.ErrPersistence, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Discarding unreadable stored value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false, nil
	}
	return true, nil
}

// setJSON encodes value and stores it under key.
func (r *BaseRepository) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.Store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w: %w", key, apperrors.ErrPersistence, err)
	}
	return nil
}

// setMany writes entries in one batch when the store supports it, key by key otherwise.
func (r *BaseRepository) setMany(ctx context.Context, entries map[string]string, order []string) error {
	if bw, ok := r.Store.(portsrepo.BatchWriter); ok {
		if err := bw.SetMany(ctx, entries); err != nil {
			return fmt.Errorf("failed to write batch: %w: %w", apperrors.ErrPersistence, err)
		}
		return nil
	}
	for _, key := range order {
		if err := r.Store.Set(ctx, key, entries[key]); err != nil {
			return fmt.Errorf("failed to write %s: %w: %w", key, apperrors.ErrPersistence, err)
		}
	}
	return nil
}

func (r *BaseRepository) remove(ctx context.Context, key string) error {
	if err := r.Store.Remove(ctx, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w: %w", key, apperrors.ErrPersistence, err)
	}
	return nil
}
