package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// SendCodeRequest asks for a one-time code to be sent to a phone number.
type SendCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required" example:"+14155550123"`
}

// SendCodeResponse is the pending verification handle.
type SendCodeResponse struct {
	VerificationID string    `json:"verificationId"`
	PhoneNumber    string    `json:"phoneNumber"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// ConfirmCodeRequest confirms a one-time code against a pending verification.
type ConfirmCodeRequest struct {
	VerificationID string `json:"verificationId" binding:"required"`
	Code           string `json:"code" binding:"required,len=6,numeric" example:"123456"`
}

// UserResponse describes the signed-in user.
type UserResponse struct {
	UserID      string    `json:"userID"`
	PhoneNumber string    `json:"phoneNumber"`
	SignedInAt  time.Time `json:"signedInAt"`
}

// LoginResponse represents the response for a successful sign-in.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ToSendCodeResponse converts a domain.PendingVerification to SendCodeResponse DTO.
func ToSendCodeResponse(p *domain.PendingVerification) SendCodeResponse {
	return SendCodeResponse{
		VerificationID: p.VerificationID,
		PhoneNumber:    p.PhoneNumber,
		ExpiresAt:      p.ExpiresAt,
	}
}

// ToUserResponse converts a domain.Identity to UserResponse DTO.
func ToUserResponse(i *domain.Identity) UserResponse {
	return UserResponse{
		UserID:      i.UserID,
		PhoneNumber: i.PhoneNumber,
		SignedInAt:  i.SignedInAt,
	}
}

// ToLoginResponse converts a domain.AuthSession to LoginResponse DTO.
func ToLoginResponse(s *domain.AuthSession) LoginResponse {
	return LoginResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      ToUserResponse(&s.Identity),
	}
}
