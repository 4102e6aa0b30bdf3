package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/gateway"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/models"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettlementResult is the outcome of processing one payment notification.
type SettlementResult struct {
	OrderID   uuid.UUID `json:"order_id,omitempty"`
	PaymentID uuid.UUID `json:"payment_id,omitempty"`
	Status    string    `json:"status"`
	Duplicate bool      `json:"duplicate"`
}

// EventPublisher publishes terminal payment events. Best-effort; settlement
// never fails on a publish error.
type EventPublisher interface {
	SendPaymentEvent(event models.PaymentEvent) error
}

// SettlementService turns verified gateway notifications into durable
// Payment/Order records and clears the originating cart.
type SettlementService interface {
	Settle(ctx context.Context, n *gateway.Notification) (*SettlementResult, error)
}

type settlementService struct {
	store    repository.SettlementStore
	creds    gateway.Credentials
	currency string
	events   EventPublisher
	logger   *zap.Logger
}

// NewSettlementService creates a new SettlementService. events may be nil.
func NewSettlementService(
	store repository.SettlementStore,
	creds gateway.Credentials,
	currency string,
	events EventPublisher,
	logger *zap.Logger,
) SettlementService {
	return &settlementService{
		store:    store,
		creds:    creds,
		currency: currency,
		events:   events,
		logger:   logger,
	}
}

// Settle verifies the notification and, on success, atomically persists the
// Payment, the Order with its items, and clears the cart lines that were
// settled. Idempotent per order reference: a replayed notification returns
// the prior result without writing anything.
//
// The settled amount is always re-derived from the cart inside the
// transaction; the client-supplied amount is only ever compared against it.
func (s *settlementService) Settle(ctx context.Context, n *gateway.Notification) (*SettlementResult, error) {
	if !gateway.VerifyNotification(s.creds, n) {
		return nil, ErrVerificationFailed
	}

	outcome, ok := gateway.Outcome(n.StatusCode)
	if !ok {
		// Unknown status codes fail closed like a bad signature.
		return nil, ErrVerificationFailed
	}

	userID, err := gateway.UserFromReference(n.OrderReference)
	if err != nil {
		return nil, ErrVerificationFailed
	}

	// Verified above; the parse cannot fail here.
	amount, _ := gateway.ParseAmount(n.Amount)

	var result *SettlementResult
	txErr := s.store.InTransaction(ctx, func(tx repository.SettlementTx) error {
		existing, err := tx.PaymentByReference(n.OrderReference)
		if err != nil {
			return err
		}
		if existing != nil {
			result, err = s.priorResult(tx, existing)
			return err
		}

		switch outcome {
		case gateway.OutcomePending:
			// Acknowledged but not terminal; nothing is recorded.
			result = &SettlementResult{Status: models.PaymentStatusPending}
			return nil

		case gateway.OutcomeFailed:
			payment := s.newPayment(userID, n, amount, models.PaymentStatusFailed)
			if err := tx.CreatePayment(payment); err != nil {
				return err
			}
			result = &SettlementResult{PaymentID: payment.ID, Status: models.PaymentStatusFailed}
			return nil
		}

		// Success path: re-derive the summary from the locked cart.
		items, err := tx.CartItemsForUpdate(userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: no cart to settle for reference", ErrSettlementFailed)
		}

		products, err := tx.ProductsByIDs(productIDs(items))
		if err != nil {
			return err
		}
		summary, err := PriceCart(items, products, s.currency)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSettlementFailed, err)
		}

		if summary.TotalAmount != amount {
			return ErrAmountMismatch
		}

		payment := s.newPayment(userID, n, amount, models.PaymentStatusSuccess)
		if err := tx.CreatePayment(payment); err != nil {
			return err
		}

		order := &models.Order{
			ID:        uuid.New(),
			UserID:    userID,
			PaymentID: payment.ID,
			Amount:    summary.TotalAmount,
			Status:    models.OrderStatusPaid,
		}
		for _, line := range summary.Items {
			order.OrderItems = append(order.OrderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			})
		}
		if err := tx.CreateOrder(order); err != nil {
			return err
		}

		if err := tx.DeleteCartItems(userID, productIDs(items)); err != nil {
			return err
		}

		result = &SettlementResult{
			OrderID:   order.ID,
			PaymentID: payment.ID,
			Status:    models.PaymentStatusSuccess,
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrAmountMismatch) {
			s.logger.Warn("Settlement rejected: amount mismatch",
				zap.String("order_reference", n.OrderReference),
				zap.String("notified_amount", n.Amount),
			)
			return nil, ErrAmountMismatch
		}
		if errors.Is(txErr, ErrSettlementFailed) {
			s.logger.Error("Settlement failed", zap.String("order_reference", n.OrderReference), zap.Error(txErr))
			return nil, txErr
		}
		s.logger.Error("Settlement transaction error", zap.String("order_reference", n.OrderReference), zap.Error(txErr))
		return nil, fmt.Errorf("%w: %v", ErrSettlementFailed, txErr)
	}

	if result.Duplicate {
		s.logger.Info("Duplicate notification, returning prior result",
			zap.String("order_reference", n.OrderReference),
			zap.String("status", result.Status),
		)
		return result, nil
	}

	s.logger.Info("Settlement recorded",
		zap.String("order_reference", n.OrderReference),
		zap.String("status", result.Status),
		zap.String("order_id", result.OrderID.String()),
	)

	s.publishEvent(userID, n, amount, result)
	return result, nil
}

// priorResult reconstructs the outcome of an already-settled reference.
func (s *settlementService) priorResult(tx repository.SettlementTx, payment *models.Payment) (*SettlementResult, error) {
	result := &SettlementResult{
		PaymentID: payment.ID,
		Status:    payment.Status,
		Duplicate: true,
	}
	if payment.Status == models.PaymentStatusSuccess {
		order, err := tx.OrderByPaymentID(payment.ID)
		if err != nil {
			return nil, err
		}
		result.OrderID = order.ID
	}
	return result, nil
}

func (s *settlementService) newPayment(userID uuid.UUID, n *gateway.Notification, amount int, status string) *models.Payment {
	return &models.Payment{
		ID:               uuid.New(),
		UserID:           userID,
		OrderReference:   n.OrderReference,
		Amount:           amount,
		Currency:         n.Currency,
		Status:           status,
		GatewayPaymentID: n.GatewayPaymentID,
	}
}

func (s *settlementService) publishEvent(userID uuid.UUID, n *gateway.Notification, amount int, result *SettlementResult) {
	if s.events == nil || result.Status == models.PaymentStatusPending {
		return
	}

	event := models.PaymentEvent{
		Type:           "payment_" + result.Status,
		OrderReference: n.OrderReference,
		UserID:         userID.String(),
		PaymentID:      result.PaymentID.String(),
		Amount:         amount,
		Currency:       n.Currency,
		Timestamp:      time.Now().UTC(),
	}
	if result.OrderID != uuid.Nil {
		event.OrderID = result.OrderID.String()
	}

	if err := s.events.SendPaymentEvent(event); err != nil {
		s.logger.Warn("Failed to publish payment event",
			zap.String("order_reference", n.OrderReference),
			zap.Error(err),
		)
	}
}
