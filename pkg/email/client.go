package email

import (
	"fmt"

	"gopkg.in/mail.v2"
)

// Client sends notification emails over SMTP.
type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
}

func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
	}
}

// SendError wraps an SMTP delivery failure. SMTP errors are treated as
// transient: the server may simply be unavailable or greylisting.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return fmt.Sprintf("smtp send: %v", e.Err) }

func (e *SendError) Unwrap() error { return e.Err }

func (e *SendError) Transient() bool { return true }

// Send delivers an HTML email to the given address.
func (c *Client) Send(to, subject, htmlBody string) error {
	message := mail.NewMessage()

	message.SetHeader("From", c.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)

	message.SetBody("text/html", htmlBody)

	dialer := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)

	if err := dialer.DialAndSend(message); err != nil {
		return &SendError{Err: err}
	}

	return nil
}
