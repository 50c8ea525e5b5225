package appointments

import (
	"time"

	"cadence-platform/internal/status"
)

// Appointment is a meeting booked with a prospect company. It optionally
// references the interaction and the detected error event that seeded it.

type Appointment struct {
	ID            string `json:"id" db:"id"`
	CompanyDomain string `json:"empresa_dominio" db:"empresa_dominio"`

	InteractionID string `json:"interacao_id,omitempty" db:"interacao_id"`
	ErrorEventID  string `json:"erro_evento_id,omitempty" db:"erro_evento_id"`

	StartsAt time.Time `json:"inicio" db:"inicio"`
	EndsAt   time.Time `json:"fim" db:"fim"`

	Status status.AppointmentStatus `json:"status" db:"status"`

	// Calendar-integration identifiers (external booking system).
	CalendarEventID string `json:"calendar_event_id,omitempty" db:"calendar_event_id"`
	CalendarLink    string `json:"calendar_link,omitempty" db:"calendar_link"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
