package domain

import "github.com/shopspring/decimal"

const (
	// PointsPerExpense is awarded for every recorded expense.
	PointsPerExpense = 10
	// PointsPerLevel is the width of one level.
	PointsPerLevel = 100
	// StreakBonusInterval is how often (in streak days) a bonus is paid.
	StreakBonusInterval = 5
	// StreakBonusMultiplier times the streak length is the bonus paid.
	StreakBonusMultiplier = 2
)

// LevelForPoints is the only way a level is ever produced.
func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// GameState holds the accumulated gamification counters of one user.
// Level is derived from Points and therefore has no field of its own.
type GameState struct {
	Points      int  `json:"points"`
	Streak      int  `json:"streak"`
	LastLogDate Date `json:"lastLogDate"`
}

// Level returns floor(points/100)+1.
func (g GameState) Level() int {
	return LevelForPoints(g.Points)
}

// PointsIntoLevel returns how many points were earned inside the current level.
func (g GameState) PointsIntoLevel() int {
	return g.Points % PointsPerLevel
}

// LevelProgressPercent returns the share of the current level already earned.
func (g GameState) LevelProgressPercent() int {
	return g.PointsIntoLevel() * 100 / PointsPerLevel
}

// ProgressEventType names an informational notification raised by the engine.
type ProgressEventType string

const (
	EventLevelUp     ProgressEventType = "level_up"
	EventStreakBonus ProgressEventType = "streak_bonus"
)

// ProgressEvent is emitted when the engine crosses a level or pays a streak bonus.
type ProgressEvent struct {
	Type        ProgressEventType `json:"type"`
	Level       int               `json:"level,omitempty"`
	Streak      int               `json:"streak,omitempty"`
	BonusPoints int               `json:"bonusPoints,omitempty"`
}

// ProgressOutcome is the result of applying one expense to a game state.
type ProgressOutcome struct {
	Previous      GameState       `json:"previous"`
	Current       GameState       `json:"current"`
	PointsAwarded int             `json:"pointsAwarded"`
	Events        []ProgressEvent `json:"events"`
}

// LeveledUp reports whether the outcome crossed at least one level boundary.
func (o ProgressOutcome) LeveledUp() bool {
	return o.Current.Level() > o.Previous.Level()
}

// ApplyExpense advances g for one expense logged on today.
//
// Points are awarded first, then the level is checked, then the streak is
// advanced by calendar-day gap. A same-day (or earlier) log leaves the streak
// untouched.
func (g GameState) ApplyExpense(today Date) ProgressOutcome {
	next := g
	if next.Points < 0 {
		next.Points = 0
	}
	if next.Streak < 0 {
		next.Streak = 0
	}
	out := ProgressOutcome{Previous: g, Events: []ProgressEvent{}}

	levelBefore := LevelForPoints(next.Points)
	next.Points += PointsPerExpense
	out.PointsAwarded = PointsPerExpense

	reportedLevel := levelBefore
	if lvl := next.Level(); lvl > reportedLevel {
		reportedLevel = lvl
		out.Events = append(out.Events, ProgressEvent{Type: EventLevelUp, Level: lvl})
	}

	switch {
	case next.LastLogDate.IsZero():
		next.Streak = 1
	case today.DaysSince(next.LastLogDate) == 1:
		next.Streak++
		if next.Streak > 0 && next.Streak%StreakBonusInterval == 0 {
			bonus := next.Streak * StreakBonusMultiplier
			next.Points += bonus
			out.PointsAwarded += bonus
			out.Events = append(out.Events, ProgressEvent{Type: EventStreakBonus, Streak: next.Streak, BonusPoints: bonus})
		}
	case today.DaysSince(next.LastLogDate) > 1:
		next.Streak = 1
	}

	// the bonus may cross a boundary of its own
	if lvl := next.Level(); lvl > reportedLevel {
		out.Events = append(out.Events, ProgressEvent{Type: EventLevelUp, Level: lvl})
	}

	next.LastLogDate = today
	out.Current = next
	return out
}

// Dashboard is the home screen summary for one user.
type Dashboard struct {
	TotalSpent     decimal.Decimal
	RecentExpenses []Expense
	State          GameState
}
