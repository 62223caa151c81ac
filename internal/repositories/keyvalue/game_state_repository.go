package keyvalue

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
)

type kvGameStateRepository struct {
	BaseRepository
}

func newKVGameStateRepository(store portsrepo.KeyValueStore) portsrepo.GameStateRepositoryFacade {
	return &kvGameStateRepository{BaseRepository{Store: store}}
}

var _ portsrepo.GameStateRepositoryFacade = (*kvGameStateRepository)(nil)

func (r *kvGameStateRepository) FindGameState(ctx context.Context, userID string) (domain.GameState, error) {
	var state domain.GameState
	var err error

	if state.Points, err = r.getInt(ctx, userKey(userID, keyPoints)); err != nil {
		return domain.GameState{}, err
	}
	if state.Streak, err = r.getInt(ctx, userKey(userID, keyStreak)); err != nil {
		return domain.GameState{}, err
	}

	key := userKey(userID, keyLastLogDate)
	raw, ok, err := r.Store.Get(ctx, key)
	if err != nil {
		return domain.GameState{}, fmt.Errorf("failed to read %s: %w: %w", key, apperrors.ErrPersistence, err)
	}
	if ok && raw != "" {
		date, perr := domain.ParseDate(raw)
		if perr != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Discarding unreadable last log date",
				slog.String("key", key), slog.String("error", perr.Error()))
		} else {
			state.LastLogDate = date
		}
	}

	// level is stored for readers only; it is always recomputed from points
	if stored, lerr := r.getInt(ctx, userKey(userID, keyLevel)); lerr == nil && stored != 0 && stored != state.Level() {
		middleware.GetLoggerFromCtx(ctx).Warn("Stored level out of sync with points, using derived level",
			slog.String("user_id", userID),
			slog.Int("stored_level", stored),
			slog.Int("derived_level", state.Level()))
	}

	return state, nil
}

func (r *kvGameStateRepository) SaveGameState(ctx context.Context, userID string, state domain.GameState) error {
	entries := map[string]string{
		userKey(userID, keyPoints):      strconv.Itoa(state.Points),
		userKey(userID, keyLevel):       strconv.Itoa(state.Level()),
		userKey(userID, keyStreak):      strconv.Itoa(state.Streak),
		userKey(userID, keyLastLogDate): state.LastLogDate.String(),
	}
	order := []string{
		userKey(userID, keyPoints),
		userKey(userID, keyLevel),
		userKey(userID, keyStreak),
		userKey(userID, keyLastLogDate),
	}
	return r.setMany(ctx, entries, order)
}

// getInt reads a decimal integer; absent or unreadable values count as 0.
func (r *kvGameStateRepository) getInt(ctx context.Context, key string) (int, error) {
	raw, ok, err := r.Store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w: %w", key, apperrors.ErrPersistence, err)
	}
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		middleware.GetLoggerFromCtx(ctx).Warn("Discarding unreadable counter",
			slog.String("key", key), slog.String("value", raw))
		return 0, nil
	}
	return n, nil
}
