package model

// UID is the short public identifier issued to a participant.
// It doubles as the gate-entry credential printed on ID cards.
type UID string

// Participant represents a fest attendee
type Participant struct {
	UID     UID    `json:"uid"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	College string `json:"college,omitempty"`

	// IsShadow marks a profile auto-created because a team leader named
	// this person as a teammate. It stays true until the participant
	// completes the profile themselves.
	IsShadow      bool          `json:"is_shadow,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status,omitempty"`
}

// Teammate is a name/email pair supplied by a team leader
type Teammate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
