package notification

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/queue-notifier/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func TestCreateNotification(t *testing.T) {
	repo, mock := setupMockDB(t)

	notificationID := uuid.New()
	n := model.Notification{
		UserID:        uuid.New(),
		AppointmentID: uuid.New(),
		Channel:       model.ChannelSMS,
		Recipient:     "+911234567890",
		Subject:       "Appointment Confirmation",
		Body:          "Hello!",
		TemplateName:  "appointment_booked",
		Status:        model.StatusPending,
		RetryCount:    0,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO notifications (
		    user_id, appointment_id, channel, recipient, subject, body, template_name, status, retry_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
    `)).
		WithArgs(
			n.UserID, n.AppointmentID, n.Channel, n.Recipient, n.Subject,
			n.Body, n.TemplateName, n.Status, n.RetryCount,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(notificationID))

	id, err := repo.CreateNotification(context.Background(), n)
	assert.NoError(t, err)
	assert.Equal(t, notificationID, id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotificationByID(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	createdAt := time.Now()

	query := regexp.QuoteMeta(`
		SELECT id, user_id, appointment_id, channel, recipient, subject, body,
		       template_name, status, retry_count, error_message, created_at, sent_at
		FROM notifications
		WHERE id = $1;
    `)

	columns := []string{
		"id", "user_id", "appointment_id", "channel", "recipient", "subject", "body",
		"template_name", "status", "retry_count", "error_message", "created_at", "sent_at",
	}

	mock.ExpectQuery(query).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			id, uuid.New(), uuid.New(), "sms", "+911234567890", "", "Hello!",
			"appointment_booked", "pending", 0, nil, createdAt, nil,
		))

	n, err := repo.GetNotificationByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, id, n.ID)
	assert.Equal(t, model.ChannelSMS, n.Channel)
	assert.Equal(t, model.StatusPending, n.Status)
	assert.Equal(t, "appointment_booked", n.TemplateName)
	assert.Empty(t, n.ErrorMessage)
	assert.Nil(t, n.SentAt)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(query).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetNotificationByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotificationStatusByID(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	query := regexp.QuoteMeta(`
		SELECT status
		FROM notifications
		WHERE id = $1;
    `)

	mock.ExpectQuery(query).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))

	status, err := repo.GetNotificationStatusByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, status)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(query).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	status, err = repo.GetNotificationStatusByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.Equal(t, model.Status(""), status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSent(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	sentAt := time.Now()

	query := regexp.QuoteMeta(`
		UPDATE notifications
		SET status = 'sent', sent_at = $2
		WHERE id = $1 AND status = 'pending';
    `)

	mock.ExpectExec(query).
		WithArgs(id, sentAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkSent(context.Background(), id, sentAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// A record that is no longer pending must not match.
	mock.ExpectExec(query).
		WithArgs(id, sentAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkSent(context.Background(), id, sentAt)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFailed(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	reason := "Twilio configuration missing"

	query := regexp.QuoteMeta(`
		UPDATE notifications
		SET status = 'failed', error_message = $2
		WHERE id = $1 AND status = 'pending';
    `)

	mock.ExpectExec(query).
		WithArgs(id, reason).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkFailed(context.Background(), id, reason)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(query).
		WithArgs(id, reason).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkFailed(context.Background(), id, reason)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordFailedAttempt(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	reason := "connection reset by peer"

	query := regexp.QuoteMeta(`
		UPDATE notifications
		SET retry_count = retry_count + 1, error_message = $2
		WHERE id = $1 AND status = 'pending'
		RETURNING retry_count;
    `)

	mock.ExpectQuery(query).
		WithArgs(id, reason).
		WillReturnRows(sqlmock.NewRows([]string{"retry_count"}).AddRow(2))

	retries, err := repo.RecordFailedAttempt(context.Background(), id, reason)
	assert.NoError(t, err)
	assert.Equal(t, 2, retries)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(query).
		WithArgs(id, reason).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.RecordFailedAttempt(context.Background(), id, reason)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllNotifications(t *testing.T) {
	repo, mock := setupMockDB(t)

	columns := []string{
		"id", "user_id", "appointment_id", "channel", "recipient", "subject", "body",
		"template_name", "status", "retry_count", "error_message", "created_at", "sent_at",
	}

	sentAt := time.Now()
	rows := sqlmock.NewRows(columns).
		AddRow(uuid.New(), uuid.New(), uuid.New(), "sms", "+911234567890", "", "msg1",
			"appointment_booked", "sent", 0, nil, time.Now(), sentAt).
		AddRow(uuid.New(), uuid.New(), uuid.New(), "email", "a@example.com", "Subject", "msg2",
			nil, "failed", 3, "connection refused", time.Now(), nil)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, user_id, appointment_id, channel, recipient, subject, body,
		       template_name, status, retry_count, error_message, created_at, sent_at
		FROM notifications
		ORDER BY created_at DESC;
    `)).WillReturnRows(rows)

	list, err := repo.GetAllNotifications(context.Background())
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.NotNil(t, list[0].SentAt)
	assert.Equal(t, "connection refused", list[1].ErrorMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}
