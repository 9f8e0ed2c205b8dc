package portal

import (
	"context"
	"net/url"

	"github.com/SXPXL/eventflow/internal/model"
)

// PaymentStatus queries the order-status endpoint polled after the
// hosted payment page redirects back
func (c *Client) PaymentStatus(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	var resp model.PaymentOrder
	if err := c.get(ctx, "/payment/status/"+url.PathEscape(orderID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
