package controllers

import (
	"errors"
	"net/http"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/middleware"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Checkout services.CheckoutService
	Payments services.PaymentService
	Logger   *zap.Logger
}

func NewCheckoutController(checkout services.CheckoutService, payments services.PaymentService, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{Checkout: checkout, Payments: payments, Logger: logger}
}

// Summary returns the priced pre-checkout view of the user's cart without
// mutating anything.
func (cc *CheckoutController) Summary(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, err := cc.Checkout.BuildSummary(c.Request.Context(), userID)
	if err != nil {
		var unavailable *services.ProductUnavailableError
		if errors.As(err, &unavailable) {
			c.JSON(http.StatusConflict, gin.H{
				"error":       "products unavailable",
				"product_ids": unavailable.ProductIDs,
			})
			return
		}
		cc.Logger.Error("Failed to build checkout summary", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CreatePayment builds a signed payment request for the hosted gateway
// checkout form. Nothing is persisted until the gateway confirms.
func (cc *CheckoutController) CreatePayment(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	req, err := cc.Payments.CreatePaymentRequest(c.Request.Context(), userID)
	if err != nil {
		var unavailable *services.ProductUnavailableError
		switch {
		case errors.Is(err, services.ErrInvalidSummary):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty or total is zero"})
		case errors.As(err, &unavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error":       "products unavailable",
				"product_ids": unavailable.ProductIDs,
			})
		default:
			cc.Logger.Error("Failed to create payment request", zap.String("user_id", userID.String()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment request"})
		}
		return
	}

	c.JSON(http.StatusOK, req)
}
