package domain

import "time"

// Identity is a signed-in user as established by phone verification.
type Identity struct {
	UserID      string    `json:"userID"`
	PhoneNumber string    `json:"phoneNumber"`
	SessionID   string    `json:"sessionID"`
	SignedInAt  time.Time `json:"signedInAt"`
}

// PendingVerification is the handle returned after an OTP was sent.
type PendingVerification struct {
	VerificationID string    `json:"verificationID"`
	PhoneNumber    string    `json:"phoneNumber"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// AuthStateChange is delivered to auth state listeners; Identity is nil on sign-out.
type AuthStateChange struct {
	Identity *Identity
	UserID   string
}

// AuthSession is returned by a successful code confirmation.
type AuthSession struct {
	Identity  Identity
	Token     string
	ExpiresAt time.Time
}
