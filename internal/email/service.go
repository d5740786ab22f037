package emails

import (
	"context"
	"errors"

	"go-dutyleave/internal/config"

	"go.uber.org/zap"
)

// Service queues emails and delivers them in the background. Delivery
// failures are recorded and logged, never returned to the caller: a failed
// notification must not undo or block the transition that triggered it.
type Service struct {
	repo   Repository
	smtp   SMTPConfig
	from   string
	logger *zap.Logger
}

func NewService(cfg *config.Config, repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo: repo,
		smtp: SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		},
		from:   cfg.EmailFrom,
		logger: logger,
	}
}

func (s *Service) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return errors.New("recipient required")
	}

	email := &Email{
		From:     s.from,
		To:       to,
		Subject:  subject,
		HtmlBody: htmlBody,
		Status:   EmailQueued,
	}
	if err := s.repo.Create(ctx, email); err != nil {
		return err
	}

	go s.process(email)
	return nil
}

func (s *Service) process(email *Email) {
	if !s.smtp.Configured() {
		s.logger.Info("SMTP not configured, skipping email delivery",
			zap.Strings("to", email.To), zap.String("subject", email.Subject))
		_ = s.repo.UpdateStatus(context.Background(), email.ID, EmailFailed, "smtp not configured")
		return
	}

	if err := SendSMTP(s.smtp, email); err != nil {
		s.logger.Warn("email delivery failed",
			zap.Strings("to", email.To), zap.Error(err))
		_ = s.repo.UpdateStatus(context.Background(), email.ID, EmailFailed, err.Error())
		return
	}

	_ = s.repo.UpdateStatus(context.Background(), email.ID, EmailSent, "")
}
