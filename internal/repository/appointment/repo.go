package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/queue-notifier/internal/model"
)

// Repository is read-only access to the appointment data owned by the
// booking service. Only the fields the reminder scanner needs are exposed.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new appointment repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// UpcomingInWindow returns confirmed appointments on the given day whose time
// falls in [from, to) and whose user has a phone number on file.
func (r *Repository) UpcomingInWindow(ctx context.Context, day, from, to time.Time) ([]model.UpcomingAppointment, error) {
	query := `
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
    `

	rows, err := r.db.QueryContext(
		ctx, query,
		day.Format("2006-01-02"), from.Format("15:04:05"), to.Format("15:04:05"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming appointments: %w", err)
	}
	defer rows.Close()

	var appointments []model.UpcomingAppointment
	for rows.Next() {
		var a model.UpcomingAppointment
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.TokenNumber, &a.UserName, &a.UserPhone, &a.ServiceName, &a.OfficeName,
		); err != nil {
			return nil, err
		}

		appointments = append(appointments, a)
	}

	return appointments, rows.Err()
}
