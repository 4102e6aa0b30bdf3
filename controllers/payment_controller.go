package controllers

import (
	"errors"
	"net/http"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/gateway"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/middleware"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/repository"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentController struct {
	Settlement services.SettlementService
	Repo       repository.PaymentRepository
	Logger     *zap.Logger
}

func NewPaymentController(settlement services.SettlementService, repo repository.PaymentRepository, logger *zap.Logger) *PaymentController {
	return &PaymentController{Settlement: settlement, Repo: repo, Logger: logger}
}

// Notify receives the gateway's asynchronous payment notification. The
// response is a minimal acknowledgment: a bare 200 on success or duplicate,
// 400 on anything untrustworthy, 500 when the gateway should retry. Detail
// stays in the logs, never in the response body.
func (pc *PaymentController) Notify(c *gin.Context) {
	var n gateway.Notification
	if err := c.ShouldBind(&n); err != nil {
		pc.Logger.Warn("Malformed payment notification", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := pc.Settlement.Settle(c.Request.Context(), &n)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVerificationFailed):
			pc.Logger.Warn("Payment notification rejected: verification failed",
				zap.String("order_reference", n.OrderReference),
				zap.String("supplied_signature", n.Signature),
				zap.String("client_ip", c.ClientIP()),
			)
			c.Status(http.StatusBadRequest)
		case errors.Is(err, services.ErrAmountMismatch):
			pc.Logger.Warn("Payment notification rejected: amount mismatch",
				zap.String("order_reference", n.OrderReference),
				zap.String("notified_amount", n.Amount),
			)
			c.Status(http.StatusBadRequest)
		default:
			// Transient settlement failure; the gateway will retry.
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	pc.Logger.Info("Payment notification processed",
		zap.String("order_reference", n.OrderReference),
		zap.String("status", result.Status),
		zap.Bool("duplicate", result.Duplicate),
	)
	c.Status(http.StatusOK)
}

// SavePayment is the authenticated reconciliation path used when the notify
// webhook never arrived. It takes the same notification fields and goes
// through the same verification and settlement; a client cannot assert
// success without a valid gateway signature.
func (pc *PaymentController) SavePayment(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var n gateway.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	// The reference must belong to the caller.
	refUser, err := gateway.UserFromReference(n.OrderReference)
	if err != nil || refUser != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "order reference does not belong to caller"})
		return
	}

	result, err := pc.Settlement.Settle(c.Request.Context(), &n)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVerificationFailed):
			pc.Logger.Warn("Save payment rejected: verification failed",
				zap.String("user_id", userID.String()),
				zap.String("order_reference", n.OrderReference),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": "verification failed"})
		case errors.Is(err, services.ErrAmountMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount mismatch"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "settlement failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPayments lists the authenticated user's payment records, newest first.
func (pc *PaymentController) GetPayments(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := pagination(c)

	payments, total, err := pc.Repo.FindByUserID(c.Request.Context(), userID, page, limit)
	if err != nil {
		pc.Logger.Error("Failed to fetch payments", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"meta": gin.H{
			"page":           page,
			"limit":          limit,
			"total_payments": total,
		},
	})
}

// GetPayment lets the client poll the settlement state for one of its own
// order references after returning from the hosted checkout.
func (pc *PaymentController) GetPayment(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reference := c.Param("reference")
	payment, err := pc.Repo.FindByReference(c.Request.Context(), reference)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		pc.Logger.Error("Failed to fetch payment", zap.String("order_reference", reference), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch payment"})
		return
	}

	if payment.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}

	c.JSON(http.StatusOK, payment)
}
