package mailer

// Mailer defines the interface for sending transactional mail
type Mailer interface {
	// SendVerification sends an email verification link to a recipient
	SendVerification(toEmail, toName, verifyURL string) error

	// GetName returns the name of the mailer implementation
	GetName() string
}
