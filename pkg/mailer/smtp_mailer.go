package mailer

import (
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds configuration for the SMTP mailer
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // Sender address, e.g. no-reply@afrostay.example
	FromName string
}

// SMTPMailer sends mail through an SMTP relay using go-mail
type SMTPMailer struct {
	cfg    SMTPConfig
	client *mail.Client
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Port == 0 {
		cfg.Port = 587
	}

	client, err := mail.NewClient(
		cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize smtp client: %w", err)
	}

	return &SMTPMailer{cfg: cfg, client: client}, nil
}

// SendVerification sends an email verification link
func (m *SMTPMailer) SendVerification(toEmail, toName, verifyURL string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.AddToFormat(toName, toEmail); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject("Verify your email address")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hello %s,\n\nPlease verify your email address by opening the link below:\n\n%s\n\nThe link expires in 24 hours. If you did not sign up, ignore this message.\n",
		toName, verifyURL,
	))

	if err := m.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}
	return nil
}

// GetName returns the mailer name
func (m *SMTPMailer) GetName() string {
	return "smtp"
}
