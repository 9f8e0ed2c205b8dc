package model

// RegistrationID uniquely identifies a registration record
type RegistrationID int64

// Registration is the durable link between a participant and an event.
// The backend owns it; the client reads it and, for gate check-in,
// triggers the not-attended to attended transition.
//
// The shape is normalized once at the data boundary: the roster endpoint
// historically served team info either flat or nested, and event info
// under varying keys. The portal client flattens all of that here.
type Registration struct {
	ID            RegistrationID `json:"reg_id"`
	UserUID       UID            `json:"user_uid"`
	UserName      string         `json:"user_name"`
	EventID       EventID        `json:"event_id"`
	EventName     string         `json:"event_name,omitempty"`
	TeamName      string         `json:"team_name,omitempty"`
	PaymentStatus PaymentStatus  `json:"payment_status"`
	Attended      bool           `json:"attended"`
}
