package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashOTPCode hashes a one-time code using bcrypt so the plaintext never reaches the store.
func HashOTPCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckOTPCode compares a plaintext code with a bcrypt hash.
func CheckOTPCode(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
