package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/queue-notifier/internal/model"
	"github.com/aliskhannn/queue-notifier/internal/rabbitmq/queue"
	"github.com/aliskhannn/queue-notifier/internal/sender"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/delivery/mock.go -package=mocks

type ChannelSender interface {
	Deliver(ctx context.Context, strategy retry.Strategy, id uuid.UUID) sender.Outcome
}

type delayedPublisher interface {
	PublishDelayed(job queue.DeliveryJob, delay time.Duration, strategy retry.Strategy) error
}

type notificationService interface {
	MarkFailed(ctx context.Context, strategy retry.Strategy, id uuid.UUID, reason string) error
}

// Handler executes one delivery job: it waits out any scheduled delay, runs
// the sender for the job's channel and turns a retry outcome into a delayed
// re-enqueue of the same job.
type Handler struct {
	senders map[model.Channel]ChannelSender
	queue   delayedPublisher
	service notificationService
}

func NewHandler(senders map[model.Channel]ChannelSender, queue delayedPublisher, service notificationService) *Handler {
	return &Handler{senders: senders, queue: queue, service: service}
}

func (h *Handler) HandleJob(ctx context.Context, job queue.DeliveryJob, strategy retry.Strategy) {
	if delay := time.Until(job.RunAt); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}

	s, ok := h.senders[job.Channel]
	if !ok {
		reason := fmt.Sprintf("unknown channel %q", job.Channel)
		zlog.Logger.Error().Str("id", job.NotificationID.String()).Msg(reason)

		if err := h.service.MarkFailed(ctx, strategy, job.NotificationID, reason); err != nil {
			zlog.Logger.Error().Err(err).Str("id", job.NotificationID.String()).Msg("failed to mark notification failed")
		}
		return
	}

	outcome := s.Deliver(ctx, strategy, job.NotificationID)

	switch outcome.Result {
	case sender.ResultRetry:
		next := job
		next.Attempt++

		if err := h.queue.PublishDelayed(next, outcome.RetryIn, strategy); err != nil {
			// The record would stay pending forever without a scheduled
			// attempt, so a reschedule failure is terminal.
			zlog.Logger.Error().Err(err).Str("id", job.NotificationID.String()).Msg("failed to schedule retry")

			reason := fmt.Sprintf("failed to schedule retry: %v", err)
			if merr := h.service.MarkFailed(ctx, strategy, job.NotificationID, reason); merr != nil {
				zlog.Logger.Error().Err(merr).Str("id", job.NotificationID.String()).Msg("failed to mark notification failed")
			}
			return
		}

		zlog.Logger.Info().
			Str("id", job.NotificationID.String()).
			Int("attempt", next.Attempt).
			Dur("retry_in", outcome.RetryIn).
			Msg("delivery retry scheduled")
	case sender.ResultDelivered:
		zlog.Logger.Info().Str("id", job.NotificationID.String()).Msg("notification delivered")
	case sender.ResultFailed:
		zlog.Logger.Warn().Str("id", job.NotificationID.String()).Str("reason", outcome.Reason).Msg("notification failed")
	case sender.ResultSkipped:
		zlog.Logger.Info().Str("id", job.NotificationID.String()).Msg("notification skipped")
	}
}
