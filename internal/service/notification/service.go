package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/queue-notifier/internal/model"
	"github.com/aliskhannn/queue-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

var (
	// ErrInvalidChannel is returned when the channel is not one of sms, email, push.
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrInvalidRecipient is returned when the recipient address does not fit the channel.
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrEnqueue is returned when the delivery job could not be enqueued.
	// The notification record already exists in pending state; swallowing this
	// error would leave it pending forever with no process to advance it.
	ErrEnqueue = errors.New("failed to enqueue delivery job")
)

type deliveryPublisher interface {
	Publish(job queue.DeliveryJob, strategy retry.Strategy) error
}

type notificationRepository interface {
	CreateNotification(context.Context, model.Notification) (uuid.UUID, error)
	GetNotificationByID(context.Context, uuid.UUID) (model.Notification, error)
	GetNotificationStatusByID(context.Context, uuid.UUID) (model.Status, error)
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	RecordFailedAttempt(ctx context.Context, id uuid.UUID, reason string) (int, error)
	GetAllNotifications(context.Context) ([]model.Notification, error)
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// CreateParams are the inputs of a dispatch call. Subject and body arrive
// already rendered; they are never re-rendered on retry.
type CreateParams struct {
	UserID        uuid.UUID
	AppointmentID uuid.UUID
	Channel       model.Channel
	Recipient     string
	Subject       string
	Body          string
	TemplateName  string
}

// Service creates notification records, dispatches their delivery jobs and
// keeps the Redis status cache coherent with the store.
type Service struct {
	repo      notificationRepository
	queue     deliveryPublisher
	cache     cache
	validator *validator.Validate
}

func NewService(
	repo notificationRepository,
	queue deliveryPublisher,
	cache cache,
	validator *validator.Validate,
) *Service {
	return &Service{repo: repo, queue: queue, cache: cache, validator: validator}
}

// recipientRule returns the validation rule a recipient must satisfy for the
// channel: E.164 phone numbers for sms, an address for email, a non-empty
// device token for push.
func recipientRule(channel model.Channel) string {
	switch channel {
	case model.ChannelSMS:
		return "required,e164"
	case model.ChannelEmail:
		return "required,email"
	default:
		return "required"
	}
}

// CreateNotification validates the dispatch parameters, persists a pending
// notification record and enqueues exactly one delivery job carrying its id.
// It returns as soon as the job is enqueued; delivery happens asynchronously.
//
// On an enqueue failure the id of the already-created record is returned
// together with an error wrapping ErrEnqueue, so the caller can decide whether
// the triggering business action should fail.
func (s *Service) CreateNotification(ctx context.Context, strategy retry.Strategy, params CreateParams) (uuid.UUID, error) {
	if !params.Channel.Valid() {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidChannel, params.Channel)
	}

	if err := s.validator.Var(params.Recipient, recipientRule(params.Channel)); err != nil {
		return uuid.Nil, fmt.Errorf("%w: channel %s: %q", ErrInvalidRecipient, params.Channel, params.Recipient)
	}

	notification := model.Notification{
		UserID:        params.UserID,
		AppointmentID: params.AppointmentID,
		Channel:       params.Channel,
		Recipient:     params.Recipient,
		Subject:       params.Subject,
		Body:          params.Body,
		TemplateName:  params.TemplateName,
		Status:        model.StatusPending,
		RetryCount:    0,
	}

	id, err := s.repo.CreateNotification(ctx, notification)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create notification: %w", err)
	}

	err = s.cache.SetWithRetry(ctx, strategy, id.String(), string(model.StatusPending))
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification status")
	}

	job := queue.DeliveryJob{
		NotificationID: id,
		Channel:        params.Channel,
	}

	if err := s.queue.Publish(job, strategy); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to publish delivery job")
		return id, fmt.Errorf("%w: %v", ErrEnqueue, err)
	}

	return id, nil
}

// GetNotificationByID returns the current persisted state of a notification.
func (s *Service) GetNotificationByID(ctx context.Context, id uuid.UUID) (model.Notification, error) {
	n, err := s.repo.GetNotificationByID(ctx, id)
	if err != nil {
		return model.Notification{}, fmt.Errorf("get notification: %w", err)
	}

	return n, nil
}

// GetNotificationStatusByID returns the notification status, preferring the
// cache and falling back to the store on a miss.
func (s *Service) GetNotificationStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.Status, error) {
	cached, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification status from cache")
	}

	if err == nil {
		return model.Status(cached), nil
	}

	status, err := s.repo.GetNotificationStatusByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get notification status: %w", err)
	}

	if cerr := s.cache.SetWithRetry(ctx, strategy, id.String(), string(status)); cerr != nil {
		zlog.Logger.Error().Err(cerr).Str("id", id.String()).Msg("failed to cache notification status")
	}

	return status, nil
}

// MarkSent records a successful delivery and refreshes the cached status.
func (s *Service) MarkSent(ctx context.Context, strategy retry.Strategy, id uuid.UUID, sentAt time.Time) error {
	if err := s.repo.MarkSent(ctx, id, sentAt); err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), string(model.StatusSent)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification status")
	}

	return nil
}

// MarkFailed records a terminal delivery failure and refreshes the cached status.
func (s *Service) MarkFailed(ctx context.Context, strategy retry.Strategy, id uuid.UUID, reason string) error {
	if err := s.repo.MarkFailed(ctx, id, reason); err != nil {
		return fmt.Errorf("mark notification failed: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), string(model.StatusFailed)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification status")
	}

	return nil
}

// RecordFailedAttempt bumps the retry counter after a transient failure and
// returns the new count. The record stays pending; the cache entry is still valid.
func (s *Service) RecordFailedAttempt(ctx context.Context, id uuid.UUID, reason string) (int, error) {
	retries, err := s.repo.RecordFailedAttempt(ctx, id, reason)
	if err != nil {
		return 0, fmt.Errorf("record failed attempt: %w", err)
	}

	return retries, nil
}

// GetAllNotifications lists every notification record, newest first.
func (s *Service) GetAllNotifications(ctx context.Context) ([]model.Notification, error) {
	notifications, err := s.repo.GetAllNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all notifications: %w", err)
	}

	return notifications, nil
}
