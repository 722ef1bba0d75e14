package appointment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"
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

func TestUpcomingInWindow(t *testing.T) {
	repo, mock := setupMockDB(t)

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	from := time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

	query := regexp.QuoteMeta(`
		SELECT a.id, a.user_id, a.token_number, u.first_name, u.phone, s.name, o.name
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		JOIN queues q ON q.id = a.queue_id
		JOIN services s ON s.id = q.service_id
		JOIN offices o ON o.id = q.office_id
		WHERE a.appointment_date = $1
		  AND a.appointment_time >= $2
		  AND a.appointment_time < $3
		  AND a.status = 'confirmed'
		  AND u.phone <> '';
    `)

	apptID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(query).
		WithArgs("2024-05-01", "10:15:00", "10:30:00").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "token_number", "first_name", "phone", "name", "name",
		}).AddRow(apptID, userID, "A12", "Asha", "+911234567890", "Bill Payment", "GUVNL HQ"))

	appointments, err := repo.UpcomingInWindow(context.Background(), day, from, to)
	assert.NoError(t, err)
	assert.Len(t, appointments, 1)
	assert.Equal(t, apptID, appointments[0].ID)
	assert.Equal(t, "A12", appointments[0].TokenNumber)
	assert.Equal(t, "+911234567890", appointments[0].UserPhone)
	assert.Equal(t, "GUVNL HQ", appointments[0].OfficeName)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(query).
		WithArgs("2024-05-01", "10:15:00", "10:30:00").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "token_number", "first_name", "phone", "name", "name",
		}))

	appointments, err = repo.UpcomingInWindow(context.Background(), day, from, to)
	assert.NoError(t, err)
	assert.Empty(t, appointments)
	assert.NoError(t, mock.ExpectationsWereMet())
}
