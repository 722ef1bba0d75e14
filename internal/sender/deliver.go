package sender

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/queue-notifier/internal/model"
	repo "github.com/aliskhannn/queue-notifier/internal/repository/notification"
)

// configError marks missing provider configuration: a permanent failure class,
// never retried, because retrying cannot put credentials in place.
type configError struct {
	msg string
}

func (e *configError) Error() string { return e.msg }

// deliver runs the shared delivery skeleton for one attempt: fetch the record,
// skip unless it is still pending, run the channel-specific send, then settle
// the record according to how the send went. The send callback is expected to
// return a *configError for incomplete credentials and provider errors
// otherwise.
func deliver(
	ctx context.Context,
	strategy retry.Strategy,
	store Store,
	id uuid.UUID,
	channel model.Channel,
	send func(n model.Notification) error,
) Outcome {
	n, err := store.GetNotificationByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotificationNotFound) {
			zlog.Logger.Error().Str("id", id.String()).Msg("notification not found")
			return Failed("notification not found")
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to fetch notification")
		return Failed(err.Error())
	}

	if n.Status != model.StatusPending {
		zlog.Logger.Info().
			Str("id", id.String()).
			Str("status", string(n.Status)).
			Msg("notification already settled, skipping delivery")
		return Skipped()
	}

	err = send(n)
	if err == nil {
		now := time.Now().UTC()
		if merr := store.MarkSent(ctx, strategy, id, now); merr != nil {
			zlog.Logger.Error().Err(merr).Str("id", id.String()).Msg("failed to mark notification sent")
		}

		return Delivered()
	}

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		zlog.Logger.Error().Str("id", id.String()).Str("channel", string(channel)).Msg(cfgErr.msg)
		markFailed(ctx, strategy, store, id, cfgErr.msg)
		return Failed(cfgErr.msg)
	}

	if isTransient(err) {
		retries, rerr := store.RecordFailedAttempt(ctx, id, err.Error())
		if rerr != nil {
			zlog.Logger.Error().Err(rerr).Str("id", id.String()).Msg("failed to record failed attempt")
			markFailed(ctx, strategy, store, id, err.Error())
			return Failed(err.Error())
		}

		zlog.Logger.Warn().
			Err(err).
			Str("id", id.String()).
			Str("channel", string(channel)).
			Int("retries", retries).
			Msg("transient delivery failure")

		if retries >= MaxRetries {
			markFailed(ctx, strategy, store, id, err.Error())
			return Failed(err.Error())
		}

		return RetryIn(Backoff(retries-1), err.Error())
	}

	zlog.Logger.Error().Err(err).Str("id", id.String()).Str("channel", string(channel)).Msg("delivery failed")
	markFailed(ctx, strategy, store, id, err.Error())
	return Failed(err.Error())
}

func markFailed(ctx context.Context, strategy retry.Strategy, store Store, id uuid.UUID, reason string) {
	if err := store.MarkFailed(ctx, strategy, id, reason); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to mark notification failed")
	}
}
