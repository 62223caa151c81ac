package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/SscSPs/expense_tracker_app/internal/utils"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// OTPCodeLength is the number of digits in a one-time code.
const OTPCodeLength = 6

// authService implements the AuthSvcFacade interface
type authService struct {
	BaseService
	verifications  portsrepo.VerificationRepository
	sessions       portsrepo.SessionRepository
	sender         portssvc.SMSSender
	jwtSecret      string
	jwtExpiry      time.Duration
	jwtIssuer      string
	otpTTL         time.Duration
	otpMaxAttempts int
	now            func() time.Time

	// one confirmation at a time per verification id keeps the attempt count exact
	confirmLocks *userLocks

	listenersMu sync.Mutex
	listeners   map[int]portssvc.AuthStateListener
	nextID      int
}

// AuthServiceOption is a functional option for configuring the auth service
type AuthServiceOption func(*authService)

// WithSMSSender sets how one-time codes are delivered.
func WithSMSSender(sender portssvc.SMSSender) AuthServiceOption {
	return func(s *authService) {
		s.sender = sender
	}
}

// WithAuthClock replaces time.Now.
func WithAuthClock(now func() time.Time) AuthServiceOption {
	return func(s *authService) {
		s.now = now
	}
}

// NewAuthService creates a new auth service with the provided options
func NewAuthService(cfg *config.Config, verifications portsrepo.VerificationRepository, sessions portsrepo.SessionRepository, options ...AuthServiceOption) portssvc.AuthSvcFacade {
	svc := &authService{
		verifications:  verifications,
		sessions:       sessions,
		jwtSecret:      cfg.JWTSecret,
		jwtExpiry:      cfg.JWTExpiryDuration,
		jwtIssuer:      cfg.JWTIssuer,
		otpTTL:         cfg.OTPTTL,
		otpMaxAttempts: cfg.OTPMaxAttempts,
		now:            time.Now,
		confirmLocks:   newUserLocks(),
		listeners:      make(map[int]portssvc.AuthStateListener),
	}
	for _, option := range options {
		option(svc)
	}
	if svc.sender == nil {
		svc.sender = NewLogSMSSender()
	}
	return svc
}

// Ensure authService implements the AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

// NormalizePhoneNumber prefixes "+" when missing and returns the E.164 form of a valid number.
func NormalizePhoneNumber(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("phone number is empty")
	}
	if !strings.HasPrefix(trimmed, "+") {
		trimmed = "+" + trimmed
	}
	num, err := phonenumbers.Parse(trimmed, "")
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", errors.New("phone number is not valid")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// UserIDForPhone derives the stable user id of an E.164 phone number.
func UserIDForPhone(e164 string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("tel:"+e164)).String()
}

// maskPhone keeps the last four digits for logging.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

func (s *authService) SendVerificationCode(ctx context.Context, phoneNumber string) (*domain.PendingVerification, error) {
	s.LogInfo(ctx, "Sending OTP", slog.String("phone", maskPhone(strings.TrimSpace(phoneNumber))))

	e164, err := NormalizePhoneNumber(phoneNumber)
	if err != nil {
		s.LogWarn(ctx, err, "Rejected phone number")
		return nil, apperrors.NewAuthError("sendOTP", "Please enter a valid phone number, including the country code.", err)
	}
	s.LogDebug(ctx, "Formatted phone number", slog.String("phone", maskPhone(e164)))

	code, err := utils.GenerateNumericCode(OTPCodeLength)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate OTP")
		return nil, apperrors.NewAuthError("sendOTP", "Failed to send OTP", err)
	}
	hash, err := utils.HashOTPCode(code)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash OTP")
		return nil, apperrors.NewAuthError("sendOTP", "Failed to send OTP", err)
	}

	record := portsrepo.VerificationRecord{
		VerificationID: uuid.NewString(),
		PhoneNumber:    e164,
		CodeHash:       hash,
		ExpiresAt:      s.now().Add(s.otpTTL).UTC(),
	}
	if err := s.verifications.SaveVerification(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to store verification")
		return nil, fmt.Errorf("failed to store verification: %w", err)
	}

	if err := s.sender.SendCode(ctx, e164, code); err != nil {
		s.LogError(ctx, err, "Failed to deliver OTP", slog.String("phone", maskPhone(e164)))
		_ = s.verifications.DeleteVerification(ctx, record.VerificationID)
		return nil, apperrors.NewAuthError("sendOTP", "Failed to send OTP", err)
	}

	s.LogInfo(ctx, "OTP sent successfully", slog.String("phone", maskPhone(e164)), slog.String("verification_id", record.VerificationID))
	return &domain.PendingVerification{
		VerificationID: record.VerificationID,
		PhoneNumber:    e164,
		ExpiresAt:      record.ExpiresAt,
	}, nil
}

func (s *authService) ConfirmCode(ctx context.Context, verificationID string, code string) (*domain.AuthSession, error) {
	s.LogInfo(ctx, "Confirming OTP", slog.String("verification_id", verificationID), slog.Int("code_length", len(code)))

	unlock := s.confirmLocks.Lock(verificationID)
	defer unlock()

	record, err := s.verifications.FindVerification(ctx, verificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, err, "Unknown verification", slog.String("verification_id", verificationID))
			return nil, apperrors.NewAuthError("confirmOTP", "This code is no longer valid. Please request a new one.", err)
		}
		s.LogError(ctx, err, "Failed to load verification", slog.String("verification_id", verificationID))
		return nil, fmt.Errorf("failed to load verification: %w", err)
	}

	if !s.now().Before(record.ExpiresAt) {
		_ = s.verifications.DeleteVerification(ctx, verificationID)
		s.LogInfo(ctx, "OTP expired", slog.String("verification_id", verificationID))
		return nil, apperrors.NewAuthError("confirmOTP", "This code has expired. Please request a new one.", nil)
	}

	if !utils.CheckOTPCode(strings.TrimSpace(code), record.CodeHash) {
		record.Attempts++
		if record.Attempts >= s.otpMaxAttempts {
			_ = s.verifications.DeleteVerification(ctx, verificationID)
			s.LogInfo(ctx, "OTP attempts exhausted", slog.String("verification_id", verificationID))
			return nil, apperrors.NewAuthError("confirmOTP", "Too many incorrect attempts. Please request a new code.", nil)
		}
		if err := s.verifications.SaveVerification(ctx, *record); err != nil {
			s.LogWarn(ctx, err, "Failed to record OTP attempt", slog.String("verification_id", verificationID))
		}
		s.LogInfo(ctx, "OTP mismatch", slog.String("verification_id", verificationID), slog.Int("attempts", record.Attempts))
		return nil, apperrors.NewAuthError("confirmOTP", "The code you entered is incorrect.", nil)
	}

	if err := s.verifications.DeleteVerification(ctx, verificationID); err != nil {
		s.LogError(ctx, err, "Failed to consume verification", slog.String("verification_id", verificationID))
		return nil, fmt.Errorf("failed to consume verification: %w", err)
	}

	sessionID, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate session id")
		return nil, apperrors.NewAuthError("confirmOTP", "OTP confirmation failed", err)
	}
	now := s.now().UTC()
	identity := domain.Identity{
		UserID:      UserIDForPhone(record.PhoneNumber),
		PhoneNumber: record.PhoneNumber,
		SessionID:   sessionID,
		SignedInAt:  now,
	}
	if err := s.sessions.SaveSession(ctx, identity); err != nil {
		s.LogError(ctx, err, "Failed to store session", slog.String("user_id", identity.UserID))
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := utils.GenerateJWT(identity.UserID, sessionID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("user_id", identity.UserID))
		_ = s.sessions.DeleteSession(ctx, sessionID)
		return nil, apperrors.NewAuthError("confirmOTP", "OTP confirmation failed", err)
	}

	s.LogInfo(ctx, "OTP confirmed successfully", slog.String("user_id", identity.UserID), slog.String("phone", maskPhone(identity.PhoneNumber)))
	s.notify(domain.AuthStateChange{Identity: &identity, UserID: identity.UserID})

	return &domain.AuthSession{
		Identity:  identity,
		Token:     token,
		ExpiresAt: now.Add(s.jwtExpiry),
	}, nil
}

func (s *authService) SignOut(ctx context.Context, identity domain.Identity) error {
	s.LogInfo(ctx, "Attempting sign out", slog.String("user_id", identity.UserID))
	if err := s.sessions.DeleteSession(ctx, identity.SessionID); err != nil {
		s.LogError(ctx, err, "Sign out failed", slog.String("user_id", identity.UserID))
		return apperrors.NewAuthError("signOut", "Sign out failed", err)
	}
	s.LogInfo(ctx, "Sign out successful", slog.String("user_id", identity.UserID))
	s.notify(domain.AuthStateChange{UserID: identity.UserID})
	return nil
}

func (s *authService) CurrentUser(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := middleware.IdentityFromCtx(ctx)
	s.LogDebug(ctx, "Current user check", slog.String("user_id", identity.UserID), slog.Bool("is_logged_in", ok))
	if !ok {
		return nil, false
	}
	return &identity, true
}

func (s *authService) ValidateSession(ctx context.Context, sessionID string, userID string) (*domain.Identity, error) {
	identity, err := s.sessions.FindSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if identity.UserID != userID {
		return nil, fmt.Errorf("session belongs to another user: %w", apperrors.ErrUnauthorized)
	}
	return identity, nil
}

func (s *authService) OnAuthStateChange(listener portssvc.AuthStateListener) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

func (s *authService) notify(change domain.AuthStateChange) {
	s.listenersMu.Lock()
	listeners := make([]portssvc.AuthStateListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l(change)
	}
}
