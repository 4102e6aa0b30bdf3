package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Checkout/settlement error taxonomy. Controllers map these onto HTTP
// statuses; the webhook path never forwards their detail to the gateway.
var (
	// ErrInvalidSummary rejects an empty or zero-value checkout before any
	// external interaction.
	ErrInvalidSummary = errors.New("invalid checkout summary")

	// ErrVerificationFailed marks a notification that failed the signature
	// check or is otherwise untrustworthy. No state is changed.
	ErrVerificationFailed = errors.New("payment notification verification failed")

	// ErrAmountMismatch marks a notification whose amount does not match the
	// server-side re-derived cart total, regardless of signature validity.
	ErrAmountMismatch = errors.New("notification amount does not match cart total")

	// ErrSettlementFailed wraps transient storage failures during settlement.
	// The transaction has rolled back; the same notification may be retried.
	ErrSettlementFailed = errors.New("settlement failed")
)

// ProductUnavailableError rejects a whole checkout when any cart line
// references a product that is missing, inactive or short on stock.
type ProductUnavailableError struct {
	ProductIDs []uuid.UUID
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("products unavailable: %v", e.ProductIDs)
}
