package controllers

import (
	"net/http"
	"strconv"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/middleware"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderController struct {
	Repo   repository.OrderRepository
	Logger *zap.Logger
}

func NewOrderController(repo repository.OrderRepository, logger *zap.Logger) *OrderController {
	return &OrderController{Repo: repo, Logger: logger}
}

// GetOrders retrieves the authenticated user's orders with pagination.
func (oc *OrderController) GetOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := pagination(c)

	orders, total, err := oc.Repo.FindByUserID(c.Request.Context(), userID, page, limit)
	if err != nil {
		oc.Logger.Error("Failed to fetch orders", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"meta": gin.H{
			"page":         page,
			"limit":        limit,
			"total_orders": total,
			"has_more":     total > int64(page*limit),
		},
	})
}

// GetOrderByID retrieves one of the user's orders.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := oc.Repo.FindByIDAndUserID(c.Request.Context(), orderID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		oc.Logger.Error("Failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
