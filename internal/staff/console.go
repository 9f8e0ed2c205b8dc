// Package staff implements the console used by fest staff: login,
// event and account management, cash tokens, walk-in registration, and
// report exports. Every tool is gated by the role carried in the
// session.
package staff

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SXPXL/eventflow/internal/cart"
	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/portal"
	"github.com/SXPXL/eventflow/internal/session"
)

type Console struct {
	client  *portal.Client
	session *session.Store
	logger  *slog.Logger
}

func NewConsole(client *portal.Client, sess *session.Store, logger *slog.Logger) *Console {
	return &Console{client: client, session: sess, logger: logger}
}

// Login exchanges credentials for a bearer token and persists both the
// token and the staff descriptor.
func (c *Console) Login(ctx context.Context, username, password string) (*model.StaffUser, error) {
	resp, err := c.client.StaffLogin(ctx, portal.StaffLoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if err := c.session.SetStaff(resp.AccessToken, resp.User); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	c.logger.Info("staff logged in", "username", resp.User.Username, "role", resp.User.Role)
	return &resp.User, nil
}

// Logout drops the stored token and descriptor. Purely local; the
// backend token simply expires.
func (c *Console) Logout() error {
	return c.session.ClearStaff()
}

// current returns the logged-in staff descriptor, enforcing the tool's
// role gate.
func (c *Console) current(tool model.StaffRole) (*model.StaffUser, error) {
	user := c.session.Staff()
	if user == nil {
		return nil, model.ErrNotLoggedIn
	}
	if !user.Role.CanUse(tool) {
		return nil, fmt.Errorf("%w: requires %s role", model.ErrRoleForbidden, tool)
	}
	return user, nil
}

// CreateEvent adds an event and returns the refreshed catalog.
func (c *Console) CreateEvent(ctx context.Context, req portal.CreateEventRequest) ([]model.Event, error) {
	if _, err := c.current(model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := c.client.CreateEvent(ctx, req); err != nil {
		return nil, err
	}
	return c.client.ListEvents(ctx)
}

// DeleteEvent removes an event and returns the refreshed catalog.
func (c *Console) DeleteEvent(ctx context.Context, id model.EventID) ([]model.Event, error) {
	if _, err := c.current(model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := c.client.DeleteEvent(ctx, id); err != nil {
		return nil, err
	}
	return c.client.ListEvents(ctx)
}

// ListStaff fetches every staff account.
func (c *Console) ListStaff(ctx context.Context) ([]model.StaffUser, error) {
	if _, err := c.current(model.RoleAdmin); err != nil {
		return nil, err
	}
	return c.client.ListStaff(ctx)
}

// CreateStaff adds a staff account and returns the refreshed list.
func (c *Console) CreateStaff(ctx context.Context, req portal.CreateStaffRequest) ([]model.StaffUser, error) {
	if _, err := c.current(model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := c.client.CreateStaff(ctx, req); err != nil {
		return nil, err
	}
	return c.client.ListStaff(ctx)
}

// DeleteStaff removes a staff account. The bootstrap admin is refused
// before the request ever leaves the client.
func (c *Console) DeleteStaff(ctx context.Context, id model.StaffID) ([]model.StaffUser, error) {
	if _, err := c.current(model.RoleAdmin); err != nil {
		return nil, err
	}
	if id == model.ReservedStaffID {
		return nil, model.ErrReservedAccount
	}
	if err := c.client.DeleteStaff(ctx, id); err != nil {
		return nil, err
	}
	return c.client.ListStaff(ctx)
}

// GenerateToken mints a single-use cash token for the given amount,
// attributed to the logged-in cashier.
func (c *Console) GenerateToken(ctx context.Context, amount float64) (*model.CashToken, error) {
	user, err := c.current(model.RoleCashier)
	if err != nil {
		return nil, err
	}
	tok, err := c.client.GenerateCashToken(ctx, portal.GenerateTokenRequest{
		Amount:      amount,
		VolunteerID: user.ID,
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("cash token issued", "amount", amount, "cashier", user.Username)
	return tok, nil
}

// WalkIn registers an on-site participant, validating the roster size
// against the event before the request is sent.
func (c *Console) WalkIn(ctx context.Context, event model.Event, req portal.WalkInRequest) (*portal.WalkInResponse, error) {
	user, err := c.current(model.RoleCashier)
	if err != nil {
		return nil, err
	}
	if event.Type == model.EventGroup {
		if err := cart.ValidateTeamSize(event, 1+len(req.Members)); err != nil {
			return nil, err
		}
	}
	req.EventID = event.ID
	req.VolunteerID = user.ID
	resp, err := c.client.WalkInRegister(ctx, req)
	if err != nil {
		return nil, err
	}
	c.logger.Info("walk-in registered",
		"event_id", event.ID, "participants", len(resp.Data.Participants), "paid", resp.Data.TotalPaid)
	return resp, nil
}

// Directory lists every participant, or searches when query is set.
func (c *Console) Directory(ctx context.Context, query string) ([]model.Participant, error) {
	if _, err := c.current(model.RoleAdmin); err != nil {
		return nil, err
	}
	if query != "" {
		return c.client.SearchParticipants(ctx, query)
	}
	return c.client.ListParticipants(ctx)
}

// Registrations fetches the full roster across all events.
func (c *Console) Registrations(ctx context.Context) ([]model.Registration, error) {
	if _, err := c.current(model.RoleGuard); err != nil {
		return nil, err
	}
	return c.client.ListRegistrations(ctx)
}

// ExportEvent downloads one event's attendance CSV into dir and
// returns the written path.
func (c *Console) ExportEvent(ctx context.Context, dir string, id model.EventID, filter, sort string) (string, error) {
	if _, err := c.current(model.RoleAdmin); err != nil {
		return "", err
	}
	data, err := c.client.ExportEventCSV(ctx, id, filter, sort)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("event_%d_registrations.csv", id))
	return path, writeReport(path, data)
}

// ExportMaster downloads the all-events report into dir and returns
// the written path.
func (c *Console) ExportMaster(ctx context.Context, dir string) (string, error) {
	if _, err := c.current(model.RoleAdmin); err != nil {
		return "", err
	}
	data, err := c.client.ExportMasterCSV(ctx)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "master_registrations.csv")
	return path, writeReport(path, data)
}

func writeReport(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
