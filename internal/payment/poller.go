package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/SXPXL/eventflow/internal/model"
)

type Status string

const (
	StatusVerifying Status = "VERIFYING"
	StatusPaid      Status = "PAID"
	StatusFailed    Status = "FAILED"
	StatusTimedOut  Status = "TIMED_OUT"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollTimeout  = 15 * time.Second
)

// StatusChecker is the slice of the portal client the poller needs.
type StatusChecker interface {
	PaymentStatus(ctx context.Context, orderID string) (*model.PaymentOrder, error)
}

// UIDSink remembers which participant an order belongs to, so the
// dashboard can be reopened after the gateway round trip.
type UIDSink interface {
	SetActiveUID(uid model.UID) error
}

// PollResult is the final word on an order after polling ends.
type PollResult struct {
	Status Status
	Order  *model.PaymentOrder
}

// Poller repeatedly checks an order until it reaches a terminal state or the
// timeout elapses. A timeout is reported as TIMED_OUT rather than FAILED
// because the gateway may still settle the payment afterwards.
type Poller struct {
	checker  StatusChecker
	logger   *slog.Logger
	Interval time.Duration
	Timeout  time.Duration

	// Session, when set, receives the order's UID as soon as a status
	// response carries one.
	Session UIDSink
}

func NewPoller(checker StatusChecker, logger *slog.Logger) *Poller {
	return &Poller{
		checker:  checker,
		logger:   logger,
		Interval: DefaultPollInterval,
		Timeout:  DefaultPollTimeout,
	}
}

// Poll blocks until the order settles, the timeout fires, or ctx is
// cancelled. Transient check errors are logged and the poll continues.
func (p *Poller) Poll(ctx context.Context, orderID string) (PollResult, error) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	deadline := time.NewTimer(p.Timeout)
	defer deadline.Stop()

	var last *model.PaymentOrder
	for {
		order, err := p.checker.PaymentStatus(ctx, orderID)
		if err != nil {
			p.logger.Warn("payment status check failed", "order_id", orderID, "error", err)
		} else {
			if last == nil && order.UserUID != "" && p.Session != nil {
				if err := p.Session.SetActiveUID(order.UserUID); err != nil {
					p.logger.Warn("failed to remember order owner", "error", err)
				}
			}
			last = order
			if order.Status.Terminal() {
				if order.Status == model.OrderPaid {
					return PollResult{Status: StatusPaid, Order: order}, nil
				}
				return PollResult{Status: StatusFailed, Order: order}, nil
			}
		}

		select {
		case <-ctx.Done():
			return PollResult{Status: StatusTimedOut, Order: last}, ctx.Err()
		case <-deadline.C:
			return PollResult{Status: StatusTimedOut, Order: last}, nil
		case <-ticker.C:
		}
	}
}
