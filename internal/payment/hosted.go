package payment

import (
	"fmt"
	"net/url"
	"strings"
)

// HostedGateway builds checkout URLs for a hosted payment page. The gateway
// redirects back to returnURL with the order appended, so the redirect target
// can resume status polling without any local state.
type HostedGateway struct {
	baseURL   string
	returnURL string
}

func NewHostedGateway(baseURL, returnURL string) *HostedGateway {
	return &HostedGateway{
		baseURL:   strings.TrimRight(baseURL, "/"),
		returnURL: returnURL,
	}
}

func (g *HostedGateway) Name() string { return "hosted" }

func (g *HostedGateway) CheckoutURL(h Handoff) (string, error) {
	if h.PaymentSessionID == "" {
		return "", fmt.Errorf("handoff has no payment session")
	}

	q := url.Values{}
	q.Set("session_id", h.PaymentSessionID)
	if g.returnURL != "" {
		ret, err := url.Parse(g.returnURL)
		if err != nil {
			return "", fmt.Errorf("parsing return url: %w", err)
		}
		rq := ret.Query()
		rq.Set("order_id", h.OrderID)
		ret.RawQuery = rq.Encode()
		q.Set("return_url", ret.String())
	}

	return g.baseURL + "/checkout?" + q.Encode(), nil
}
