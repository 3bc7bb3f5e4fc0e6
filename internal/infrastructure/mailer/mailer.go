package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"

	"github.com/stefanv/moneta/internal/domain"
)

// Config holds SMTP settings.
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	SenderEmail string
}

// SMTPMailer sends reminder emails over SMTP.
type SMTPMailer struct {
	cfg    Config
	logger zerolog.Logger
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg Config, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		logger: logger,
	}
}

// SendReminder emails the reminder message to the given address.
func (m *SMTPMailer) SendReminder(ctx context.Context, to string, reminder *domain.Reminder) error {
	e := email.NewEmail()
	e.From = m.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Reminder: " + reminder.Message

	body := fmt.Sprintf("This is your reminder for %s", reminder.Date)
	if reminder.Time != "" {
		body += " at " + reminder.Time
	}
	body += ".\n\n" + reminder.Message + "\n"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		m.logger.Error().Err(err).Str("to", to).Str("reminder_id", reminder.ID).Msg("failed to send reminder email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info().Str("to", to).Str("reminder_id", reminder.ID).Msg("reminder email sent")
	return nil
}
