package models

import "time"

// PaymentEvent is published after a settlement attempt reaches a terminal
// state. Consumers (fulfilment, notifications) treat it as best-effort.
type PaymentEvent struct {
	Type           string    `json:"type"` // "payment_success" or "payment_failed"
	OrderID        string    `json:"order_id,omitempty"`
	OrderReference string    `json:"order_reference"`
	UserID         string    `json:"user_id"`
	PaymentID      string    `json:"payment_id"`
	Amount         int       `json:"amount"`   // minor currency units
	Currency       string    `json:"currency"` // "LKR"
	Timestamp      time.Time `json:"timestamp"`
}
