package sender

import (
	"context"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/queue-notifier/internal/config"
	"github.com/aliskhannn/queue-notifier/internal/model"
)

// SMSSender delivers sms notifications through a Twilio-style provider.
// Credentials are re-read and the provider is re-built on every attempt so a
// rotation takes effect without a restart.
type SMSSender struct {
	store       Store
	creds       func() config.Twilio
	newProvider func(config.Twilio) SMSProvider
}

func NewSMSSender(store Store, creds func() config.Twilio, newProvider func(config.Twilio) SMSProvider) *SMSSender {
	return &SMSSender{store: store, creds: creds, newProvider: newProvider}
}

func (s *SMSSender) Deliver(ctx context.Context, strategy retry.Strategy, id uuid.UUID) Outcome {
	return deliver(ctx, strategy, s.store, id, model.ChannelSMS, func(n model.Notification) error {
		c := s.creds()
		if c.AccountSID == "" || c.AuthToken == "" || c.FromNumber == "" {
			return &configError{msg: "Twilio configuration missing"}
		}

		sid, err := s.newProvider(c).Send(n.Recipient, n.Body)
		if err != nil {
			return err
		}

		zlog.Logger.Info().Str("id", n.ID.String()).Str("provider_message_id", sid).Msg("sms sent")
		return nil
	})
}
