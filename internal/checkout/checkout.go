// Package checkout submits the event stack to the portal as one bulk
// registration, in cash or online mode.
package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SXPXL/eventflow/internal/cart"
	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/payment"
	"github.com/SXPXL/eventflow/internal/portal"
)

type Mode string

const (
	ModeOnline Mode = "ONLINE"
	ModeCash   Mode = "CASH"
)

// Portal is the slice of the portal client the orchestrator needs.
type Portal interface {
	ValidateTeam(ctx context.Context, req portal.ValidateTeamRequest) (*portal.ValidateTeamResponse, error)
	RegisterBulk(ctx context.Context, req portal.BulkRegisterRequest) (*portal.BulkRegisterResponse, error)
}

// Session is the slice of session state checkout reads and writes.
type Session interface {
	SpotMode() bool
	SetActiveUID(uid model.UID) error
}

// Result is the outcome of a checkout. Exactly one of Message or
// Handoff is meaningful: cash checkouts confirm immediately, online
// checkouts hand off to the payment gateway.
type Result struct {
	Mode    Mode
	Message string
	Handoff *payment.Handoff
}

type Orchestrator struct {
	portal  Portal
	session Session
	logger  *slog.Logger
}

func New(p Portal, sess Session, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{portal: p, session: sess, logger: logger}
}

// AddGroupItem validates a roster against the portal before putting the
// event on the stack, so conflicts surface at add time rather than at
// checkout.
func (o *Orchestrator) AddGroupItem(ctx context.Context, leaderUID model.UID, c *cart.Cart, event model.Event, team cart.TeamEntry) error {
	emails := make([]string, 0, len(team.Teammates))
	for _, t := range team.Teammates {
		if t.Email != "" {
			emails = append(emails, t.Email)
		}
	}
	resp, err := o.portal.ValidateTeam(ctx, portal.ValidateTeamRequest{
		EventID:   event.ID,
		Emails:    emails,
		LeaderUID: leaderUID,
	})
	if err != nil {
		return err
	}
	if !resp.Valid {
		return fmt.Errorf("team rejected: %s", resp.Detail)
	}
	return c.Add(event, &team)
}

// Checkout submits every stack entry in one request. On a successful
// cash checkout the stack is cleared; on a successful online checkout
// the stack is kept until payment settles and the leader UID is
// remembered for status polling. Any failure leaves the stack intact.
func (o *Orchestrator) Checkout(ctx context.Context, leaderUID model.UID, c *cart.Cart, mode Mode, cashToken string) (*Result, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	if mode == ModeCash {
		if !o.session.SpotMode() {
			return nil, model.ErrCashNotOffered
		}
		if cashToken == "" {
			return nil, model.ErrCashTokenRequired
		}
	}

	req := portal.BulkRegisterRequest{
		LeaderUID:   leaderUID,
		Items:       make([]portal.BulkRegisterItem, 0, len(items)),
		PaymentMode: string(mode),
		CashToken:   cashToken,
	}
	for _, it := range items {
		bi := portal.BulkRegisterItem{EventID: it.EventID}
		if it.Team != nil {
			bi.TeamName = it.Team.Name
			bi.Teammates = it.Team.Teammates
		}
		req.Items = append(req.Items, bi)
	}

	resp, err := o.portal.RegisterBulk(ctx, req)
	if err != nil {
		return nil, err
	}

	if mode == ModeCash {
		c.Clear()
		o.logger.Info("cash checkout confirmed", "leader_uid", leaderUID, "events", len(items))
		return &Result{Mode: mode, Message: resp.Message}, nil
	}

	if err := o.session.SetActiveUID(leaderUID); err != nil {
		o.logger.Warn("failed to persist active uid", "error", err)
	}
	o.logger.Info("online checkout started",
		"leader_uid", leaderUID, "order_id", resp.OrderID, "events", len(items))
	return &Result{
		Mode: mode,
		Handoff: &payment.Handoff{
			PaymentSessionID: resp.PaymentSessionID,
			OrderID:          resp.OrderID,
			Amount:           c.Total(),
			UserUID:          leaderUID,
		},
	}, nil
}
