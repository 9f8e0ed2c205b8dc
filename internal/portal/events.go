package portal

import (
	"context"
	"fmt"

	"github.com/SXPXL/eventflow/internal/model"
)

// CreateEventRequest is the admin event-creation payload
type CreateEventRequest struct {
	Name        string          `json:"name"`
	Type        model.EventType `json:"type"`
	Fee         float64         `json:"fee"`
	MinTeamSize int             `json:"min_team_size,omitempty"`
	MaxTeamSize int             `json:"max_team_size,omitempty"`
	Date        string          `json:"date,omitempty"`
	StartTime   string          `json:"start_time,omitempty"`
	EndTime     string          `json:"end_time,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ValidateTeamRequest is the pre-flight conflict check run before a
// group entry is added to the stack
type ValidateTeamRequest struct {
	EventID   model.EventID `json:"event_id"`
	Emails    []string      `json:"emails"`
	LeaderUID model.UID     `json:"leader_uid"`
}

// ValidateTeamResponse reports roster conflicts
type ValidateTeamResponse struct {
	Valid  bool   `json:"valid"`
	Detail string `json:"detail"`
}

// BulkRegisterItem is one stack entry in a bulk registration
type BulkRegisterItem struct {
	EventID   model.EventID    `json:"event_id"`
	TeamName  string           `json:"team_name,omitempty"`
	Teammates []model.Teammate `json:"teammates"`
}

// BulkRegisterRequest is the checkout payload. CashToken is set only
// for cash-mode checkouts.
type BulkRegisterRequest struct {
	LeaderUID   model.UID          `json:"leader_uid"`
	Items       []BulkRegisterItem `json:"items"`
	PaymentMode string             `json:"payment_mode"`
	CashToken   string             `json:"cash_token,omitempty"`
}

// BulkRegisterResponse is either a cash confirmation or an online
// payment-session descriptor, depending on the chosen mode
type BulkRegisterResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`

	// Online mode only
	PaymentSessionID string `json:"payment_session_id,omitempty"`
	OrderID          string `json:"order_id,omitempty"`
}

// ListEvents fetches the full event catalog
func (c *Client) ListEvents(ctx context.Context) ([]model.Event, error) {
	var resp []model.Event
	if err := c.get(ctx, "/events", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateEvent creates an event (admin)
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) error {
	return c.post(ctx, "/events", req, nil)
}

// DeleteEvent deletes an event (admin)
func (c *Client) DeleteEvent(ctx context.Context, id model.EventID) error {
	return c.delete(ctx, fmt.Sprintf("/events/%d", id))
}

// ValidateTeam checks a roster for conflicts before it joins the stack
func (c *Client) ValidateTeam(ctx context.Context, req ValidateTeamRequest) (*ValidateTeamResponse, error) {
	var resp ValidateTeamResponse
	if err := c.post(ctx, "/events/validate-team", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterBulk submits the whole stack in one checkout call
func (c *Client) RegisterBulk(ctx context.Context, req BulkRegisterRequest) (*BulkRegisterResponse, error) {
	var resp BulkRegisterResponse
	if err := c.post(ctx, "/events/register-bulk", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
