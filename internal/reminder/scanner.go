package reminder

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/queue-notifier/internal/model"
	notifsvc "github.com/aliskhannn/queue-notifier/internal/service/notification"
	"github.com/aliskhannn/queue-notifier/internal/template"
)

//go:generate mockgen -source=scanner.go -destination=../mocks/reminder/mock.go -package=mocks

const (
	// The scan window starts reminderLead ahead of now and spans windowSpan.
	// An appointment is picked up once its start time enters [now+15m, now+30m).
	reminderLead = 15 * time.Minute
	windowSpan   = 15 * time.Minute
)

type appointmentRepository interface {
	UpcomingInWindow(ctx context.Context, day, from, to time.Time) ([]model.UpcomingAppointment, error)
}

type dispatcher interface {
	CreateNotification(ctx context.Context, strategy retry.Strategy, params notifsvc.CreateParams) (uuid.UUID, error)
}

// Scanner finds soon-due confirmed appointments and dispatches SMS reminders
// for them. It only enqueues; it never touches notification rows directly.
//
// Overlapping runs inside one window produce duplicate reminders; dedup is
// left to the schema owner, every dispatch is logged with the appointment id.
type Scanner struct {
	appointments appointmentRepository
	service      dispatcher
	templates    *template.Registry
}

func NewScanner(appointments appointmentRepository, service dispatcher, templates *template.Registry) *Scanner {
	return &Scanner{
		appointments: appointments,
		service:      service,
		templates:    templates,
	}
}

// Scan performs one reminder pass for the window anchored at now.
func (s *Scanner) Scan(ctx context.Context, strategy retry.Strategy, now time.Time) error {
	from := now.Add(reminderLead)
	to := now.Add(reminderLead + windowSpan)

	appointments, err := s.appointments.UpcomingInWindow(ctx, now, from, to)
	if err != nil {
		return fmt.Errorf("find upcoming appointments: %w", err)
	}

	for _, a := range appointments {
		params := map[string]string{
			"name":    a.UserName,
			"service": a.ServiceName,
			"office":  a.OfficeName,
			"token":   a.TokenNumber,
			"minutes": strconv.Itoa(int(reminderLead / time.Minute)),
		}

		_, body, err := s.templates.Render(model.ChannelSMS, template.EventAppointmentReminder, params)
		if err != nil {
			zlog.Logger.Error().Err(err).Str("appointment_id", a.ID.String()).Msg("failed to render reminder")
			continue
		}

		id, err := s.service.CreateNotification(ctx, strategy, notifsvc.CreateParams{
			UserID:        a.UserID,
			AppointmentID: a.ID,
			Channel:       model.ChannelSMS,
			Recipient:     a.UserPhone,
			Subject:       "Appointment Reminder",
			Body:          body,
			TemplateName:  string(template.EventAppointmentReminder),
		})
		if err != nil {
			zlog.Logger.Error().Err(err).Str("appointment_id", a.ID.String()).Msg("failed to dispatch reminder")
			continue
		}

		zlog.Logger.Info().
			Str("appointment_id", a.ID.String()).
			Str("notification_id", id.String()).
			Msg("reminder dispatched")
	}

	return nil
}

// Run executes Scan on a fixed interval until the context is cancelled.
func (s *Scanner) Run(ctx context.Context, strategy retry.Strategy, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	zlog.Logger.Info().Dur("interval", interval).Msg("reminder scanner started")

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Info().Msg("reminder scanner stopped")
			return
		case <-ticker.C:
			if err := s.Scan(ctx, strategy, time.Now().UTC()); err != nil {
				zlog.Logger.Error().Err(err).Msg("reminder scan failed")
			}
		}
	}
}
