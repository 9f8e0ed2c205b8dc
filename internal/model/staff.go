package model

// StaffRole scopes which console tools a staff member may use
type StaffRole string

const (
	RoleAdmin   StaffRole = "ADMIN"
	RoleCashier StaffRole = "CASHIER"
	RoleGuard   StaffRole = "GUARD"
)

// StaffID uniquely identifies a staff account
type StaffID int64

// ReservedStaffID is the bootstrap admin account. It can never be
// deleted through the console.
const ReservedStaffID StaffID = 1

// StaffUser is the descriptor returned by staff login and persisted
// in the session store for the duration of the session
type StaffUser struct {
	ID       StaffID   `json:"id"`
	Username string    `json:"username"`
	Role     StaffRole `json:"role"`

	// AssignedEventID locks a guard to a single event's gate, when set
	AssignedEventID EventID `json:"assigned_event_id,omitempty"`
}

// CanUse reports whether the role may access a tool gated to the given
// role. Admin may use every tool.
func (r StaffRole) CanUse(tool StaffRole) bool {
	return r == RoleAdmin || r == tool
}
