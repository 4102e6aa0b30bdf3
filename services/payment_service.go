package services

import (
	"context"
	"strings"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/gateway"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService builds signed gateway payment requests from the user's
// current cart.
type PaymentService interface {
	CreatePaymentRequest(ctx context.Context, userID uuid.UUID) (*gateway.PaymentRequest, error)
}

type paymentService struct {
	checkout CheckoutService
	creds    gateway.Credentials
	urls     gateway.RedirectURLs
	logger   *zap.Logger
}

// NewPaymentService creates a new PaymentService. Credentials arrive from
// configuration resolved at process start; they are never read from a global.
func NewPaymentService(
	checkout CheckoutService,
	creds gateway.Credentials,
	urls gateway.RedirectURLs,
	logger *zap.Logger,
) PaymentService {
	return &paymentService{
		checkout: checkout,
		creds:    creds,
		urls:     urls,
		logger:   logger,
	}
}

// CreatePaymentRequest prices the cart, generates a fresh order reference
// and signs the payload for the hosted checkout form. No Payment or Order
// rows are written here; records exist only after a confirmed settlement,
// so abandoned checkouts leave nothing behind.
func (s *paymentService) CreatePaymentRequest(ctx context.Context, userID uuid.UUID) (*gateway.PaymentRequest, error) {
	summary, err := s.checkout.BuildSummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 || summary.TotalAmount <= 0 {
		return nil, ErrInvalidSummary
	}

	orderReference := gateway.NewOrderReference(userID)

	names := make([]string, 0, len(summary.Items))
	for _, line := range summary.Items {
		names = append(names, line.Name)
	}

	req := &gateway.PaymentRequest{
		MerchantID:      s.creds.MerchantID,
		OrderReference:  orderReference,
		Amount:          summary.TotalAmount,
		AmountFormatted: gateway.FormatAmount(summary.TotalAmount),
		Currency:        summary.Currency,
		Items:           strings.Join(names, ", "),
		Signature:       gateway.Sign(s.creds, orderReference, summary.TotalAmount, summary.Currency),
		ReturnURL:       s.urls.ReturnURL,
		CancelURL:       s.urls.CancelURL,
		NotifyURL:       s.urls.NotifyURL,
	}

	s.logger.Info("Payment request created",
		zap.String("user_id", userID.String()),
		zap.String("order_reference", orderReference),
		zap.Int("amount", summary.TotalAmount),
		zap.String("currency", summary.Currency),
	)

	return req, nil
}
