package dto

import (
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GameStateResponse defines the progress data shown to the user.
type GameStateResponse struct {
	Points               int    `json:"points"`
	Level                int    `json:"level"`
	Streak               int    `json:"streak"`
	LastLogDate          string `json:"lastLogDate,omitempty"`
	PointsIntoLevel      int    `json:"pointsIntoLevel"`
	PointsPerLevel       int    `json:"pointsPerLevel"`
	LevelProgressPercent int    `json:"levelProgressPercent"`
}

// ProgressEventResponse is one level-up or streak-bonus notification.
type ProgressEventResponse struct {
	Type        string `json:"type"`
	Level       int    `json:"level,omitempty"`
	Streak      int    `json:"streak,omitempty"`
	BonusPoints int    `json:"bonusPoints,omitempty"`
}

// ProgressOutcomeResponse describes what one expense did to the game state.
type ProgressOutcomeResponse struct {
	State         GameStateResponse       `json:"state"`
	PointsAwarded int                     `json:"pointsAwarded"`
	LeveledUp     bool                    `json:"leveledUp"`
	Events        []ProgressEventResponse `json:"events"`
}

// DashboardResponse is the home screen summary.
type DashboardResponse struct {
	TotalSpent     decimal.Decimal   `json:"totalSpent" swaggertype:"string"`
	RecentExpenses []ExpenseResponse `json:"recentExpenses"`
	Progress       GameStateResponse `json:"progress"`
}

// ToGameStateResponse converts a domain.GameState to GameStateResponse DTO.
func ToGameStateResponse(g *domain.GameState) GameStateResponse {
	return GameStateResponse{
		Points:               g.Points,
		Level:                g.Level(),
		Streak:               g.Streak,
		LastLogDate:          g.LastLogDate.String(),
		PointsIntoLevel:      g.PointsIntoLevel(),
		PointsPerLevel:       domain.PointsPerLevel,
		LevelProgressPercent: g.LevelProgressPercent(),
	}
}

// ToProgressOutcomeResponse converts a domain.ProgressOutcome to ProgressOutcomeResponse DTO.
func ToProgressOutcomeResponse(o *domain.ProgressOutcome) ProgressOutcomeResponse {
	events := make([]ProgressEventResponse, len(o.Events))
	for i, e := range o.Events {
		events[i] = ProgressEventResponse{
			Type:        string(e.Type),
			Level:       e.Level,
			Streak:      e.Streak,
			BonusPoints: e.BonusPoints,
		}
	}
	return ProgressOutcomeResponse{
		State:         ToGameStateResponse(&o.Current),
		PointsAwarded: o.PointsAwarded,
		LeveledUp:     o.LeveledUp(),
		Events:        events,
	}
}

// ToDashboardResponse converts a domain.Dashboard to DashboardResponse DTO.
func ToDashboardResponse(d *domain.Dashboard) DashboardResponse {
	return DashboardResponse{
		TotalSpent:     d.TotalSpent,
		RecentExpenses: ToExpenseResponses(d.RecentExpenses),
		Progress:       ToGameStateResponse(&d.State),
	}
}
