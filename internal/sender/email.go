package sender

import (
	"context"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/queue-notifier/internal/config"
	"github.com/aliskhannn/queue-notifier/internal/model"
)

// EmailSender delivers email notifications over SMTP. The body is the HTML
// rendered at dispatch time.
type EmailSender struct {
	store       Store
	creds       func() config.SMTP
	newProvider func(config.SMTP) MailProvider
}

func NewEmailSender(store Store, creds func() config.SMTP, newProvider func(config.SMTP) MailProvider) *EmailSender {
	return &EmailSender{store: store, creds: creds, newProvider: newProvider}
}

func (s *EmailSender) Deliver(ctx context.Context, strategy retry.Strategy, id uuid.UUID) Outcome {
	return deliver(ctx, strategy, s.store, id, model.ChannelEmail, func(n model.Notification) error {
		c := s.creds()
		if c.Host == "" || c.Port == "" || c.Username == "" || c.Password == "" {
			return &configError{msg: "SMTP configuration missing"}
		}

		if err := s.newProvider(c).Send(n.Recipient, n.Subject, n.Body); err != nil {
			return err
		}

		zlog.Logger.Info().Str("id", n.ID.String()).Str("to", n.Recipient).Msg("email sent")
		return nil
	})
}
