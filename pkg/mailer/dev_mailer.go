package mailer

import (
	"github.com/sirupsen/logrus"
)

// DevMailer logs verification links instead of sending mail. Used in
// development mode so signup works without an SMTP relay.
type DevMailer struct {
	logger *logrus.Logger
}

// NewDevMailer creates a new development mailer
func NewDevMailer(logger *logrus.Logger) *DevMailer {
	return &DevMailer{logger: logger}
}

// SendVerification logs the verification link
func (m *DevMailer) SendVerification(toEmail, toName, verifyURL string) error {
	m.logger.WithFields(logrus.Fields{
		"to":         toEmail,
		"verify_url": verifyURL,
	}).Info("Dev mailer: verification mail not sent")
	return nil
}

// GetName returns the mailer name
func (m *DevMailer) GetName() string {
	return "dev"
}
