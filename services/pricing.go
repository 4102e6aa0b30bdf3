package services

import (
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/models"

	"github.com/google/uuid"
)

// PriceCart derives a checkout summary from cart lines and their current
// catalog rows. Pure: prices always come from the products passed in, never
// from the caller, and nothing is mutated. Both pre-checkout and settlement
// go through this single function so the two can never disagree on a total.
func PriceCart(items []models.CartItem, products []models.Product, currency string) (*models.CheckoutSummary, error) {
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var unavailable []uuid.UUID
	lines := make([]models.CheckoutLine, 0, len(items))
	total := 0

	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok || !product.Active || product.Stock < item.Quantity {
			unavailable = append(unavailable, item.ProductID)
			continue
		}

		lineTotal := product.UnitPrice * item.Quantity
		lines = append(lines, models.CheckoutLine{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.UnitPrice,
			LineTotal: lineTotal,
		})
		total += lineTotal
	}

	// One bad line rejects the whole checkout; the caller gets the full
	// list of offending products.
	if len(unavailable) > 0 {
		return nil, &ProductUnavailableError{ProductIDs: unavailable}
	}

	return &models.CheckoutSummary{
		Items:       lines,
		TotalAmount: total,
		Currency:    currency,
	}, nil
}

func productIDs(items []models.CartItem) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
