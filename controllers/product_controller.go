package controllers

import (
	"net/http"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/httperrors"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductController struct {
	Repo   repository.ProductRepository
	Logger *zap.Logger
}

func NewProductController(repo repository.ProductRepository, logger *zap.Logger) *ProductController {
	return &ProductController{Repo: repo, Logger: logger}
}

// GetProducts lists active catalog products with pagination.
func (pc *ProductController) GetProducts(c *gin.Context) {
	page, limit := pagination(c)

	products, total, err := pc.Repo.FindAll(c.Request.Context(), page, limit)
	if err != nil {
		pc.Logger.Error("Failed to fetch products", zap.Error(err))
		_ = c.Error(httperrors.New(http.StatusInternalServerError, "Failed to fetch products", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"meta": gin.H{
			"page":           page,
			"limit":          limit,
			"total_products": total,
		},
	})
}

// GetProductByID returns a single product.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(httperrors.ErrBadRequest)
		return
	}

	product, err := pc.Repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			_ = c.Error(httperrors.ErrNotFound)
			return
		}
		pc.Logger.Error("Failed to fetch product", zap.String("product_id", id.String()), zap.Error(err))
		_ = c.Error(httperrors.New(http.StatusInternalServerError, "Failed to fetch product", err))
		return
	}

	c.JSON(http.StatusOK, product)
}
