package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogMailer writes codes to the application log instead of sending
// email. Suitable for development and tests.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer creates a new LogMailer.
func NewLogMailer() *LogMailer {
	return &LogMailer{logger: log.With().Str("component", "mailer").Logger()}
}

func (m *LogMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	m.logger.Info().Str("email", email).Str("code", code).Msg("verification code issued")
	return nil
}

func (m *LogMailer) SendPasswordResetCode(ctx context.Context, email, code string) error {
	m.logger.Info().Str("email", email).Str("code", code).Msg("password reset code issued")
	return nil
}
