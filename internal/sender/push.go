package sender

import (
	"context"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/queue-notifier/internal/config"
	"github.com/aliskhannn/queue-notifier/internal/model"
)

// PushSender delivers push notifications through a Firebase-style provider.
// The recipient field of the record holds the device token. Every credential
// field must be present before the provider is touched.
type PushSender struct {
	store       Store
	creds       func() config.Firebase
	newProvider func(config.Firebase) PushProvider
}

func NewPushSender(store Store, creds func() config.Firebase, newProvider func(config.Firebase) PushProvider) *PushSender {
	return &PushSender{store: store, creds: creds, newProvider: newProvider}
}

func (s *PushSender) Deliver(ctx context.Context, strategy retry.Strategy, id uuid.UUID) Outcome {
	return deliver(ctx, strategy, s.store, id, model.ChannelPush, func(n model.Notification) error {
		c := s.creds()
		if c.ProjectID == "" || c.ServerKey == "" {
			return &configError{msg: "Firebase configuration missing"}
		}

		if err := s.newProvider(c).Send(n.Recipient, n.Subject, n.Body); err != nil {
			return err
		}

		zlog.Logger.Info().Str("id", n.ID.String()).Msg("push notification sent")
		return nil
	})
}
