package portal

import (
	"context"
	"fmt"
	"net/url"

	"github.com/SXPXL/eventflow/internal/model"
)

// CheckUIDResponse is returned by the UID lookup endpoint
type CheckUIDResponse struct {
	Exists      bool                    `json:"exists"`
	Participant *model.Participant      `json:"user,omitempty"`
	Registered  []model.RegisteredEvent `json:"registered_events,omitempty"`
	Message     string                  `json:"message,omitempty"`
}

// RegisterParticipantRequest is the self-registration payload
type RegisterParticipantRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	College string `json:"college"`
}

// RegisterParticipantResponse carries the freshly minted UID
type RegisterParticipantResponse struct {
	UID      model.UID `json:"uid"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	IsShadow bool      `json:"is_shadow"`
	Message  string    `json:"message"`
}

// CheckUID resolves a participant and their registered events
func (c *Client) CheckUID(ctx context.Context, uid model.UID) (*CheckUIDResponse, error) {
	var resp CheckUIDResponse
	if err := c.get(ctx, "/check-uid/"+url.PathEscape(string(uid)), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterParticipant creates a new participant profile
func (c *Client) RegisterParticipant(ctx context.Context, req RegisterParticipantRequest) (*RegisterParticipantResponse, error) {
	var resp RegisterParticipantResponse
	if err := c.post(ctx, "/users", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateParticipant completes or edits a profile. Shadow accounts stop
// being shadows once the named person submits their own details.
func (c *Client) UpdateParticipant(ctx context.Context, uid model.UID, req RegisterParticipantRequest) (*model.Participant, error) {
	var resp model.Participant
	if err := c.put(ctx, "/users/"+url.PathEscape(string(uid)), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListParticipants returns the full participant directory (admin)
func (c *Client) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	var resp []model.Participant
	if err := c.get(ctx, "/admin/users", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SearchParticipants runs a full-text search over the directory (admin)
func (c *Client) SearchParticipants(ctx context.Context, query string) ([]model.Participant, error) {
	var resp []model.Participant
	path := fmt.Sprintf("/admin/users/search?q=%s", url.QueryEscape(query))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
