package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/queue-notifier/internal/model"
)

func bookedParams() map[string]string {
	return map[string]string{
		"name":       "Asha",
		"service":    "Bill Payment",
		"office":     "GUVNL HQ",
		"date":       "2024-05-01",
		"time":       "10:00",
		"token":      "A12",
		"status_url": "http://x/y",
	}
}

func TestRegistry_Render_SMS(t *testing.T) {
	r := NewRegistry()

	subject, body, err := r.Render(model.ChannelSMS, EventAppointmentBooked, bookedParams())
	require.NoError(t, err)

	assert.Empty(t, subject)
	assert.Contains(t, body, "Asha")
	assert.Contains(t, body, "A12")
	assert.Contains(t, body, "GUVNL HQ")
	assert.NotContains(t, body, "{")
}

func TestRegistry_Render_Email(t *testing.T) {
	r := NewRegistry()

	subject, body, err := r.Render(model.ChannelEmail, EventAppointmentBooked, bookedParams())
	require.NoError(t, err)

	assert.Equal(t, "Appointment Confirmation - GUVNL Queue Management", subject)
	assert.Contains(t, body, "Asha")
	assert.Contains(t, body, "http://x/y")
}

func TestRegistry_Render_MissingPlaceholder(t *testing.T) {
	r := NewRegistry()

	params := bookedParams()
	delete(params, "token")

	_, _, err := r.Render(model.ChannelSMS, EventAppointmentBooked, params)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "token", renderErr.Key)
	assert.Equal(t, EventAppointmentBooked, renderErr.Event)
}

func TestRegistry_Render_TemplateNotFound(t *testing.T) {
	r := NewRegistry()

	_, _, err := r.Render(model.ChannelEmail, EventQueueUpdate, nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, _, err = r.Render(model.ChannelPush, EventAppointmentBooked, nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, _, err = r.Render(model.ChannelSMS, Event("unknown"), nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRegistry_Render_AllSMSEvents(t *testing.T) {
	r := NewRegistry()

	params := map[string]string{
		"name": "Asha", "service": "Bill Payment", "office": "GUVNL HQ",
		"date": "2024-05-01", "time": "10:00", "token": "A12",
		"status_url": "http://x/y", "booking_url": "http://x/b",
		"minutes": "15", "position": "4", "wait_time": "20",
	}

	events := []Event{
		EventAppointmentBooked,
		EventAppointmentReminder,
		EventQueueUpdate,
		EventAppointmentReady,
		EventAppointmentCompleted,
		EventAppointmentCancelled,
	}

	for _, event := range events {
		_, body, err := r.Render(model.ChannelSMS, event, params)
		assert.NoError(t, err, "event %s", event)
		assert.NotEmpty(t, body, "event %s", event)
	}
}

func TestRegistry_Render_Reminder(t *testing.T) {
	r := NewRegistry()

	_, body, err := r.Render(model.ChannelSMS, EventAppointmentReminder, map[string]string{
		"service": "Bill Payment",
		"office":  "GUVNL HQ",
		"token":   "A12",
		"minutes": "15",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "15 minutes")
	assert.Contains(t, body, "Token: A12")
}
