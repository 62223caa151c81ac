package keyvalue

import "fmt"

// Per-user keys. The suffixes are the key names the mobile client used.
const (
	keyExpenses    = "expenses"
	keyPoints      = "points"
	keyLevel       = "level"
	keyStreak      = "streak"
	keyLastLogDate = "lastLogDate"
	keyBadges      = "badges"
	keyBudgets     = "budgets"
)

func userKey(userID, name string) string {
	return fmt.Sprintf("user:%s:%s", userID, name)
}

func verificationKey(verificationID string) string {
	return fmt.Sprintf("otp:%s", verificationID)
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}
