package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"travel-booking-platform/internal/config"
	"travel-booking-platform/internal/models"
)

// EmailMessage is a single HTML email
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
}

// SMTPEmailService sends email through an SMTP relay
type SMTPEmailService struct {
	config config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

func (s *SMTPEmailService) Send(ctx context.Context, msg EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w: %w", msg.To, models.ErrEmailUnavailable, err)
	}
	return nil
}

// MockEmailService logs messages instead of sending them and keeps a copy for inspection
type MockEmailService struct {
	logger *zap.Logger

	mu   sync.Mutex
	sent []EmailMessage
	err  error
}

func NewMockEmailService(logger *zap.Logger) *MockEmailService {
	return &MockEmailService{logger: logger}
}

func (s *MockEmailService) Send(ctx context.Context, msg EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	s.logger.Info("mock email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.HTMLBody)))
	return nil
}

// FailWith makes every following Send return err
func (s *MockEmailService) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Sent returns the messages sent so far
func (s *MockEmailService) Sent() []EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]EmailMessage(nil), s.sent...)
}

// NewEmailService picks SMTP when a relay is configured, the log-only mock otherwise
func NewEmailService(cfg config.EmailConfig, logger *zap.Logger) EmailService {
	if cfg.SMTPConfigured() {
		logger.Info("email service: SMTP", zap.String("host", cfg.SMTPHost), zap.Int("port", cfg.SMTPPort))
		return NewSMTPEmailService(cfg)
	}
	logger.Info("email service: mock (no SMTP host configured)")
	return NewMockEmailService(logger)
}
