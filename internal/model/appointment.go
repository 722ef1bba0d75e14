package model

import "github.com/google/uuid"

// UpcomingAppointment is the read model the reminder scanner works with:
// a confirmed appointment joined with the fields needed to address and
// render a reminder message.
type UpcomingAppointment struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	TokenNumber string    `json:"token_number"`
	UserName    string    `json:"user_name"`
	UserPhone   string    `json:"user_phone"`
	ServiceName string    `json:"service_name"`
	OfficeName  string    `json:"office_name"`
}
