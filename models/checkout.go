package models

import "github.com/google/uuid"

// CheckoutLine is a single priced cart line. Derived, never persisted.
type CheckoutLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice int       `json:"unit_price"`
	LineTotal int       `json:"line_total"`
}

// CheckoutSummary is the priced view of a user's cart at a point in time.
// It is recomputed on every request; it is never stored.
type CheckoutSummary struct {
	Items       []CheckoutLine `json:"items"`
	TotalAmount int            `json:"total_amount"`
	Currency    string         `json:"currency"`
}
