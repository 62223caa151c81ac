package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// VerificationRecord is a pending OTP as stored between send and confirm.
type VerificationRecord struct {
	VerificationID string    `json:"verificationID"`
	PhoneNumber    string    `json:"phoneNumber"`
	CodeHash       string    `json:"codeHash"`
	ExpiresAt      time.Time `json:"expiresAt"`
	Attempts       int       `json:"attempts"`
}

// VerificationRepository stores pending OTP verifications.
type VerificationRepository interface {
	SaveVerification(ctx context.Context, record VerificationRecord) error
	FindVerification(ctx context.Context, verificationID string) (*VerificationRecord, error)
	DeleteVerification(ctx context.Context, verificationID string) error
}

// SessionRepository stores live sign-in sessions.
type SessionRepository interface {
	SaveSession(ctx context.Context, identity domain.Identity) error
	FindSession(ctx context.Context, sessionID string) (*domain.Identity, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
