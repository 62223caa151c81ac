package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/utils"
)

// progressNotifier logs progress events and forwards them to PostHog when configured.
type progressNotifier struct {
	BaseService
	posthog *utils.PosthogClientWrapper
}

// NewProgressNotifier creates a notifier; posthogClient may be nil or uninitialised.
func NewProgressNotifier(posthogClient *utils.PosthogClientWrapper) portssvc.ProgressNotifier {
	return &progressNotifier{posthog: posthogClient}
}

func (n *progressNotifier) NotifyProgress(ctx context.Context, userID string, events []domain.ProgressEvent) {
	for _, e := range events {
		switch e.Type {
		case domain.EventLevelUp:
			n.LogInfo(ctx, "Level up", slog.String("user_id", userID), slog.Int("level", e.Level))
			n.posthog.Enqueue(userID, "level_up", map[string]any{"level": e.Level})
		case domain.EventStreakBonus:
			n.LogInfo(ctx, "Streak bonus", slog.String("user_id", userID), slog.Int("streak", e.Streak), slog.Int("bonus_points", e.BonusPoints))
			n.posthog.Enqueue(userID, "streak_bonus", map[string]any{"streak": e.Streak, "bonus_points": e.BonusPoints})
		}
	}
}

func (n *progressNotifier) NotifyBadgesUnlocked(ctx context.Context, userID string, badges []domain.Badge) {
	for _, b := range badges {
		n.LogInfo(ctx, "Achievement unlocked", slog.String("user_id", userID), slog.String("badge_id", b.ID), slog.String("badge", b.Name))
		n.posthog.Enqueue(userID, "badge_unlocked", map[string]any{"badge_id": b.ID, "badge_name": b.Name})
	}
}
