// Package template holds the message catalogue for notification delivery.
//
// Templates are registered per (channel, event) pair and rendered with simple
// {placeholder} interpolation. A missing placeholder key is an error rather
// than an empty substitution, so a broken caller is caught before anything
// reaches a provider.
package template

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/aliskhannn/queue-notifier/internal/model"
)

// Event identifies an appointment lifecycle event a template exists for.
type Event string

const (
	EventAppointmentBooked    Event = "appointment_booked"
	EventAppointmentReminder  Event = "appointment_reminder"
	EventQueueUpdate          Event = "queue_update"
	EventAppointmentReady     Event = "appointment_ready"
	EventAppointmentCompleted Event = "appointment_completed"
	EventAppointmentCancelled Event = "appointment_cancelled"
)

// ErrTemplateNotFound is returned when no template is registered for the
// requested (channel, event) pair.
var ErrTemplateNotFound = errors.New("template not found")

// RenderError reports a placeholder that had no value in the params map.
type RenderError struct {
	Event Event
	Key   string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render template %q: missing placeholder %q", e.Event, e.Key)
}

type emailTemplate struct {
	subject string
	html    string
}

// Registry is a pure lookup table of message templates.
type Registry struct {
	sms   map[Event]string
	email map[Event]emailTemplate
}

// NewRegistry builds the registry with the built-in message catalogue.
func NewRegistry() *Registry {
	return &Registry{
		sms:   smsTemplates(),
		email: emailTemplates(),
	}
}

// Render looks up the template for (channel, event) and substitutes params
// into it. The subject is empty for channels whose medium has no subject
// line. It returns ErrTemplateNotFound for an unregistered pair and a
// *RenderError if any placeholder is left without a value.
func (r *Registry) Render(channel model.Channel, event Event, params map[string]string) (subject, body string, err error) {
	switch channel {
	case model.ChannelSMS:
		tmpl, ok := r.sms[event]
		if !ok {
			return "", "", fmt.Errorf("sms template %q: %w", event, ErrTemplateNotFound)
		}

		body, err = interpolate(event, tmpl, params)
		if err != nil {
			return "", "", err
		}

		return "", body, nil
	case model.ChannelEmail:
		tmpl, ok := r.email[event]
		if !ok {
			return "", "", fmt.Errorf("email template %q: %w", event, ErrTemplateNotFound)
		}

		body, err = interpolate(event, tmpl.html, params)
		if err != nil {
			return "", "", err
		}

		return tmpl.subject, body, nil
	default:
		return "", "", fmt.Errorf("channel %q: %w", channel, ErrTemplateNotFound)
	}
}

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

func interpolate(event Event, tmpl string, params map[string]string) (string, error) {
	var missing *RenderError

	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := m[1 : len(m)-1]

		v, ok := params[key]
		if !ok {
			if missing == nil {
				missing = &RenderError{Event: event, Key: key}
			}
			return m
		}

		return v
	})

	if missing != nil {
		return "", missing
	}

	return out, nil
}
