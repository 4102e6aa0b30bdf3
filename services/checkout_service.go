package services

import (
	"context"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/models"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService derives priced summaries from a user's current cart.
type CheckoutService interface {
	BuildSummary(ctx context.Context, userID uuid.UUID) (*models.CheckoutSummary, error)
}

type checkoutService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	currency string
	logger   *zap.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	currency string,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		carts:    carts,
		products: products,
		currency: currency,
		logger:   logger,
	}
}

// BuildSummary reads the user's cart and resolves every line against the
// current catalog. Read-only; safe to call repeatedly.
func (s *checkoutService) BuildSummary(ctx context.Context, userID uuid.UUID) (*models.CheckoutSummary, error) {
	items, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	products, err := s.products.FindByIDs(ctx, productIDs(items))
	if err != nil {
		s.logger.Error("Failed to load products for cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	return PriceCart(items, products, s.currency)
}
