package routes

import (
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/config"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/controllers"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/httperrors"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/middleware"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything the router needs.
type Controllers struct {
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Payment  *controllers.PaymentController
	Order    *controllers.OrderController
	Product  *controllers.ProductController
}

// Register wires all routes. The payment notify webhook is the only
// session-less endpoint; it gets its own rate limit instead of auth.
func Register(r *gin.Engine, cfg *config.Config, c Controllers) {
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(httperrors.ErrorMiddleware())

	auth := middleware.AuthMiddleware(cfg.JWTSecret)

	cart := r.Group("/cart")
	cart.Use(auth)
	cart.GET("", c.Cart.GetCart)
	cart.POST("/items", c.Cart.AddItem)
	cart.PUT("/items/:product_id", c.Cart.UpdateItem)
	cart.DELETE("/items/:product_id", c.Cart.RemoveItem)
	cart.DELETE("", c.Cart.ClearCart)

	checkout := r.Group("/checkout")
	checkout.Use(auth)
	checkout.GET("/summary", c.Checkout.Summary)
	checkout.POST("/payment", c.Checkout.CreatePayment)

	payments := r.Group("/payments")
	payments.POST("/notify", middleware.RateLimitMiddleware(60, 20), c.Payment.Notify)
	payments.POST("/save", auth, c.Payment.SavePayment)
	payments.GET("", auth, c.Payment.GetPayments)
	payments.GET("/:reference", auth, c.Payment.GetPayment)

	orders := r.Group("/orders")
	orders.Use(auth)
	orders.GET("", c.Order.GetOrders)
	orders.GET("/:id", c.Order.GetOrderByID)

	products := r.Group("/products")
	products.GET("", c.Product.GetProducts)
	products.GET("/:id", c.Product.GetProductByID)
}
