package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"project-tracker/internal/config"

	"gopkg.in/gomail.v2"
)

// EmailDispatcher delivers payloads over SMTP.
type EmailDispatcher struct {
	cfg    *config.SMTPConfig
	logger *slog.Logger
}

func NewEmailDispatcher(cfg *config.SMTPConfig, logger *slog.Logger) *EmailDispatcher {
	return &EmailDispatcher{
		cfg:    cfg,
		logger: logger,
	}
}

func (d *EmailDispatcher) Send(ctx context.Context, payload Payload) error {
	if d.cfg.Host == "" || d.cfg.User == "" || d.cfg.From == "" {
		d.logger.Warn("smtp config missing, skip notification")
		return nil
	}
	if strings.TrimSpace(payload.Recipient) == "" {
		d.logger.Warn("notification recipient empty, skip notification")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", d.cfg.From)
	m.SetHeader("To", payload.Recipient)
	m.SetHeader("Subject", payload.Subject)
	m.SetBody("text/plain", payload.Body)

	dialer := gomail.NewDialer(d.cfg.Host, d.cfg.Port, d.cfg.User, d.cfg.Password)
	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	d.logger.Info("reminder email sent",
		slog.String("to", payload.Recipient),
		slog.String("subject", payload.Subject))
	return nil
}
