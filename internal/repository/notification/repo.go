package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/queue-notifier/internal/model"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Repository provides methods to interact with the notifications table.
//
// Terminal updates carry a status = 'pending' guard so that a sent or failed
// record can never move again, whatever an orphaned job does.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateNotification inserts a new notification into the database and returns its ID.
func (r *Repository) CreateNotification(ctx context.Context, notification model.Notification) (uuid.UUID, error) {
	query := `
		INSERT INTO notifications (
		    user_id, appointment_id, channel, recipient, subject, body, template_name, status, retry_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
    `

	err := r.db.QueryRowContext(
		ctx, query,
		notification.UserID, notification.AppointmentID, notification.Channel,
		notification.Recipient, notification.Subject, notification.Body,
		notification.TemplateName, notification.Status, notification.RetryCount,
	).Scan(&notification.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification.ID, nil
}

// GetNotificationByID retrieves a full notification record by its ID.
func (r *Repository) GetNotificationByID(ctx context.Context, id uuid.UUID) (model.Notification, error) {
	query := `
		SELECT id, user_id, appointment_id, channel, recipient, subject, body,
		       template_name, status, retry_count, error_message, created_at, sent_at
		FROM notifications
		WHERE id = $1;
    `

	var (
		n        model.Notification
		errMsg   sql.NullString
		tmplName sql.NullString
		sentAt   sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.UserID, &n.AppointmentID, &n.Channel, &n.Recipient, &n.Subject, &n.Body,
		&tmplName, &n.Status, &n.RetryCount, &errMsg, &n.CreatedAt, &sentAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Notification{}, ErrNotificationNotFound
		}

		return model.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	n.TemplateName = tmplName.String
	n.ErrorMessage = errMsg.String
	if sentAt.Valid {
		n.SentAt = &sentAt.Time
	}

	return n, nil
}

// GetNotificationStatusByID retrieves the status of a notification by its ID.
func (r *Repository) GetNotificationStatusByID(ctx context.Context, id uuid.UUID) (model.Status, error) {
	query := `
		SELECT status
		FROM notifications
		WHERE id = $1;
    `

	var status model.Status
	err := r.db.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotificationNotFound
		}

		return "", fmt.Errorf("failed to get notification status: %w", err)
	}

	return status, nil
}

// MarkSent transitions a pending notification to sent and stamps sent_at.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	query := `
		UPDATE notifications
		SET status = 'sent', sent_at = $2
		WHERE id = $1 AND status = 'pending';
    `

	res, err := r.db.ExecContext(ctx, query, id, sentAt)
	if err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkFailed transitions a pending notification to failed with a terminal reason.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE notifications
		SET status = 'failed', error_message = $2
		WHERE id = $1 AND status = 'pending';
    `

	res, err := r.db.ExecContext(ctx, query, id, reason)
	if err != nil {
		return fmt.Errorf("failed to mark notification failed: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// RecordFailedAttempt increments the retry counter of a pending notification,
// overwrites its last error and returns the new counter value.
func (r *Repository) RecordFailedAttempt(ctx context.Context, id uuid.UUID, reason string) (int, error) {
	query := `
		UPDATE notifications
		SET retry_count = retry_count + 1, error_message = $2
		WHERE id = $1 AND status = 'pending'
		RETURNING retry_count;
    `

	var retries int
	err := r.db.QueryRowContext(ctx, query, id, reason).Scan(&retries)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotificationNotFound
		}

		return 0, fmt.Errorf("failed to record failed attempt: %w", err)
	}

	return retries, nil
}

// GetAllNotifications retrieves all notifications ordered by creation time descending.
func (r *Repository) GetAllNotifications(ctx context.Context) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, appointment_id, channel, recipient, subject, body,
		       template_name, status, retry_count, error_message, created_at, sent_at
		FROM notifications
		ORDER BY created_at DESC;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var (
			n        model.Notification
			errMsg   sql.NullString
			tmplName sql.NullString
			sentAt   sql.NullTime
		)

		if err := rows.Scan(
			&n.ID, &n.UserID, &n.AppointmentID, &n.Channel, &n.Recipient, &n.Subject, &n.Body,
			&tmplName, &n.Status, &n.RetryCount, &errMsg, &n.CreatedAt, &sentAt,
		); err != nil {
			return nil, err
		}

		n.TemplateName = tmplName.String
		n.ErrorMessage = errMsg.String
		if sentAt.Valid {
			n.SentAt = &sentAt.Time
		}

		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}
