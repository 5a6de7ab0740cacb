// Package mail delivers transactional messages. Only a logging mailer
// exists; nothing is sent over SMTP.
package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// Mailer sends a verification code to an address.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// LogMailer writes the code to the log instead of sending it.
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendVerificationCode(_ context.Context, email, code string) error {
	m.logger.Info().
		Str("to", email).
		Str("code", code).
		Msg("mock email: verification code")
	return nil
}
