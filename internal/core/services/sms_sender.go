package services

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
)

// logSMSSender writes codes to the request log instead of sending them.
// It is the development sender; production deployments provide their own SMSSender.
type logSMSSender struct {
	BaseService
}

// NewLogSMSSender returns an SMSSender that logs every code.
func NewLogSMSSender() portssvc.SMSSender {
	return &logSMSSender{}
}

func (s *logSMSSender) SendCode(ctx context.Context, phoneNumber string, code string) error {
	s.LogInfo(ctx, "OTP code issued (log sender)", slog.String("phone", phoneNumber), slog.String("code", code))
	return nil
}
