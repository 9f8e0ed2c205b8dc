package model

// PaymentStatus tracks whether a participant or registration is paid up
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// OrderStatus is the lifecycle of a payment order at the gateway.
// The client polls it but never mutates it directly.
type OrderStatus string

const (
	OrderPending     OrderStatus = "PENDING"
	OrderPaid        OrderStatus = "PAID"
	OrderFailed      OrderStatus = "FAILED"
	OrderCancelled   OrderStatus = "CANCELLED"
	OrderUserDropped OrderStatus = "USER_DROPPED"
)

// Terminal reports whether the gateway will not change this status again
func (s OrderStatus) Terminal() bool {
	return s == OrderPaid || s.Failed()
}

// Failed reports whether the order ended without payment
func (s OrderStatus) Failed() bool {
	switch s {
	case OrderFailed, OrderCancelled, OrderUserDropped:
		return true
	}
	return false
}

// PaymentOrder is the client's view of a gateway order
type PaymentOrder struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
	Amount  float64     `json:"amount"`
	UserUID UID         `json:"uid,omitempty"`
}

// CashToken is a short code issued by a cashier after receiving
// physical payment, redeemed during checkout in place of online payment
type CashToken struct {
	Token  string  `json:"token"`
	Amount float64 `json:"amount"`
}
