package portal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SXPXL/eventflow/internal/model"
)

// StaffLoginRequest is the staff console credential payload
type StaffLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StaffLoginResponse carries the bearer token and user descriptor
type StaffLoginResponse struct {
	AccessToken string          `json:"access_token"`
	User        model.StaffUser `json:"user"`
}

// CreateStaffRequest is the admin account-creation payload
type CreateStaffRequest struct {
	Username        string          `json:"username"`
	Password        string          `json:"password"`
	Role            model.StaffRole `json:"role"`
	AssignedEventID model.EventID   `json:"assigned_event_id,omitempty"`
}

// GenerateTokenRequest asks the backend to mint a cash token
type GenerateTokenRequest struct {
	Amount      float64       `json:"amount"`
	VolunteerID model.StaffID `json:"volunteer_id"`
}

// MarkAttendanceRequest flips a registration to attended
type MarkAttendanceRequest struct {
	UserUID model.UID     `json:"user_uid"`
	EventID model.EventID `json:"event_id"`
}

// MarkAttendanceResponse confirms a gate entry
type MarkAttendanceResponse struct {
	Message  string `json:"message"`
	UserName string `json:"user_name"`
}

// WalkInRequest registers an on-site participant (and team) in one call
type WalkInRequest struct {
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	College     string           `json:"college"`
	EventID     model.EventID    `json:"event_id"`
	VolunteerID model.StaffID    `json:"volunteer_id"`
	Members     []model.Teammate `json:"members"`
}

// WalkInParticipant is one freshly minted identity from a walk-in
type WalkInParticipant struct {
	Name string    `json:"name"`
	UID  model.UID `json:"uid"`
	Role string    `json:"role"`
}

// WalkInResponse lists the UIDs to write on ID cards
type WalkInResponse struct {
	Data struct {
		TotalPaid    float64             `json:"total_paid"`
		Participants []WalkInParticipant `json:"participants"`
	} `json:"data"`
}

// StaffLogin authenticates a staff member
func (c *Client) StaffLogin(ctx context.Context, req StaffLoginRequest) (*StaffLoginResponse, error) {
	var resp StaffLoginResponse
	if err := c.post(ctx, "/admin/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListStaff returns every staff account (admin)
func (c *Client) ListStaff(ctx context.Context) ([]model.StaffUser, error) {
	var resp []model.StaffUser
	if err := c.get(ctx, "/admin/volunteers", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateStaff creates a staff account (admin)
func (c *Client) CreateStaff(ctx context.Context, req CreateStaffRequest) error {
	return c.post(ctx, "/admin/volunteers", req, nil)
}

// DeleteStaff removes a staff account (admin)
func (c *Client) DeleteStaff(ctx context.Context, id model.StaffID) error {
	return c.delete(ctx, fmt.Sprintf("/admin/volunteers/%d", id))
}

// GenerateCashToken mints a token for cash received at the desk
func (c *Client) GenerateCashToken(ctx context.Context, req GenerateTokenRequest) (*model.CashToken, error) {
	var resp model.CashToken
	if err := c.post(ctx, "/staff/generate-token", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MarkAttendance records a confirmed gate entry
func (c *Client) MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (*MarkAttendanceResponse, error) {
	var resp MarkAttendanceResponse
	if err := c.post(ctx, "/staff/mark-attendance", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRegistrations fetches the full registration roster
func (c *Client) ListRegistrations(ctx context.Context) ([]model.Registration, error) {
	var resp []model.Registration
	if err := c.get(ctx, "/staff/all-registrations", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// WalkInRegister performs an on-the-spot registration
func (c *Client) WalkInRegister(ctx context.Context, req WalkInRequest) (*WalkInResponse, error) {
	var resp WalkInResponse
	if err := c.post(ctx, "/staff/walk-in-register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportEventCSV downloads the registration roster for one event.
// filter is ALL, PRESENT or ABSENT; sort is NAME or TEAM.
func (c *Client) ExportEventCSV(ctx context.Context, id model.EventID, filter, sort string) ([]byte, error) {
	path := fmt.Sprintf("/staff/export/event/%d?filter=%s&sort=%s",
		id, url.QueryEscape(filter), url.QueryEscape(sort))
	data, _, err := c.raw(ctx, http.MethodGet, path, nil)
	return data, err
}

// ExportMasterCSV downloads the full database export (admin)
func (c *Client) ExportMasterCSV(ctx context.Context) ([]byte, error) {
	data, _, err := c.raw(ctx, http.MethodGet, "/admin/export/master", nil)
	return data, err
}
