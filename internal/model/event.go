package model

// EventID uniquely identifies an event
type EventID int64

// EventType distinguishes individual from team events
type EventType string

const (
	EventSolo  EventType = "SOLO"
	EventGroup EventType = "GROUP"
)

// Event is a fest event as served by the catalog endpoint.
// Team-size bounds are meaningful only for GROUP events.
type Event struct {
	ID          EventID   `json:"id"`
	Name        string    `json:"name"`
	Type        EventType `json:"type"`
	Fee         float64   `json:"fee"`
	MinTeamSize int       `json:"min_team_size,omitempty"`
	MaxTeamSize int       `json:"max_team_size,omitempty"`
	Date        string    `json:"date,omitempty"`
	StartTime   string    `json:"start_time,omitempty"`
	EndTime     string    `json:"end_time,omitempty"`
	Description string    `json:"description,omitempty"`
	Hidden      bool      `json:"hidden,omitempty"`

	// Aggregate counters maintained by the backend
	TotalRegistrations int     `json:"total_registrations,omitempty"`
	TotalAttended      int     `json:"total_attended,omitempty"`
	Revenue            float64 `json:"revenue,omitempty"`
}

// RegisteredEvent pairs an event with the payment status of the
// participant's registration for it.
type RegisteredEvent struct {
	Event
	PaymentStatus PaymentStatus `json:"payment_status"`
}
