package services

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// AuthStateListener is called after every sign-in and sign-out.
type AuthStateListener func(change domain.AuthStateChange)

// VerificationSvc defines the phone one-time-code flow.
type VerificationSvc interface {
	// SendVerificationCode normalises phoneNumber to E.164 and sends a one-time code to it.
	SendVerificationCode(ctx context.Context, phoneNumber string) (*domain.PendingVerification, error)

	// ConfirmCode checks code against a pending verification and starts a session.
	ConfirmCode(ctx context.Context, verificationID string, code string) (*domain.AuthSession, error)
}

// SessionSvc defines operations on live sessions.
type SessionSvc interface {
	// SignOut ends the session of identity.
	SignOut(ctx context.Context, identity domain.Identity) error

	// CurrentUser returns the identity carried by ctx, if any.
	CurrentUser(ctx context.Context) (*domain.Identity, bool)

	// ValidateSession returns the identity of a live session owned by userID.
	ValidateSession(ctx context.Context, sessionID string, userID string) (*domain.Identity, error)

	// OnAuthStateChange registers listener and returns a function that unregisters it.
	OnAuthStateChange(listener AuthStateListener) (unsubscribe func())
}

// AuthSvcFacade combines all auth-related service interfaces
type AuthSvcFacade interface {
	VerificationSvc
	SessionSvc
}

// SMSSender delivers a one-time code to a phone number.
type SMSSender interface {
	SendCode(ctx context.Context, phoneNumber string, code string) error
}
