// Package sender implements per-channel notification delivery with bounded
// retry. Each sender performs one delivery attempt for one notification id and
// reports an explicit Outcome; the queue handler turns a retry outcome into a
// delayed re-enqueue. Senders own all mutations of their notification record.
package sender

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"

	"github.com/aliskhannn/queue-notifier/internal/model"
)

//go:generate mockgen -source=sender.go -destination=../mocks/sender/mock.go -package=mocks

const (
	// MaxRetries is the attempt ceiling for transient provider failures.
	// Reaching it forces the notification into failed state.
	MaxRetries = 3

	baseRetryDelay = 60 * time.Second
)

// Backoff returns the delay before re-attempting after the 0-indexed failed
// attempt: 60s, 120s, 240s.
func Backoff(attempt int) time.Duration {
	return baseRetryDelay << attempt
}

// Result tags a delivery outcome.
type Result int

const (
	// ResultDelivered means the provider accepted the message and the record is sent.
	ResultDelivered Result = iota

	// ResultRetry means a transient failure occurred and the job must be
	// re-enqueued after Outcome.RetryIn.
	ResultRetry

	// ResultFailed means the record reached (or already had) a terminal state
	// that retrying cannot fix.
	ResultFailed

	// ResultSkipped means the record was no longer pending; nothing was attempted.
	ResultSkipped
)

// Outcome is the result of one delivery attempt.
type Outcome struct {
	Result  Result
	RetryIn time.Duration
	Reason  string
}

func Delivered() Outcome { return Outcome{Result: ResultDelivered} }

func Skipped() Outcome { return Outcome{Result: ResultSkipped} }

func Failed(reason string) Outcome { return Outcome{Result: ResultFailed, Reason: reason} }

func RetryIn(delay time.Duration, reason string) Outcome {
	return Outcome{Result: ResultRetry, RetryIn: delay, Reason: reason}
}

// Store is the notification state a sender reads and mutates. Implemented by
// the notification service so status changes keep the cache coherent.
type Store interface {
	GetNotificationByID(ctx context.Context, id uuid.UUID) (model.Notification, error)
	MarkSent(ctx context.Context, strategy retry.Strategy, id uuid.UUID, sentAt time.Time) error
	MarkFailed(ctx context.Context, strategy retry.Strategy, id uuid.UUID, reason string) error
	RecordFailedAttempt(ctx context.Context, id uuid.UUID, reason string) (int, error)
}

// SMSProvider sends a text message and returns the provider message id.
type SMSProvider interface {
	Send(to, body string) (string, error)
}

// MailProvider sends an HTML email.
type MailProvider interface {
	Send(to, subject, htmlBody string) error
}

// PushProvider sends a push notification to a device token.
type PushProvider interface {
	Send(deviceToken, title, body string) error
}

type transienter interface {
	Transient() bool
}

// isTransient reports whether a provider error is worth retrying. Errors that
// do not declare themselves transient are treated as permanent so a
// non-recoverable bug cannot loop forever.
func isTransient(err error) bool {
	var t transienter
	if errors.As(err, &t) {
		return t.Transient()
	}

	return false
}
