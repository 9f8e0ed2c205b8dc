package payment

import (
	"github.com/SXPXL/eventflow/internal/model"
)

// Handoff is what the portal returns when an online checkout succeeds: the
// gateway session to open and the order to poll afterwards.
type Handoff struct {
	PaymentSessionID string
	OrderID          string
	Amount           float64
	UserUID          model.UID
}

// Provider turns a checkout handoff into something the participant can act
// on, typically a hosted gateway URL to open in a browser.
type Provider interface {
	Name() string

	// CheckoutURL returns the URL the participant should visit to complete
	// payment for the given handoff.
	CheckoutURL(h Handoff) (string, error)
}
