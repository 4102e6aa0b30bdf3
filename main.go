package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/config"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/controllers"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/database"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/gateway"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/kafka"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/logger"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/middleware"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/models"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/repository"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/routes"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	log := logger.New(cfg.Env)
	defer log.Sync()

	// --- Database ---
	db, err := database.Connect(cfg, log,
		&models.Product{},
		&models.CartItem{},
		&models.Payment{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}

	// --- Payment gateway credentials (resolved once, passed explicitly) ---
	creds := gateway.Credentials{
		MerchantID:     cfg.MerchantID,
		MerchantSecret: cfg.MerchantSecret,
	}
	urls := gateway.RedirectURLs{
		ReturnURL: cfg.PaymentReturnURL,
		CancelURL: cfg.PaymentCancelURL,
		NotifyURL: cfg.PaymentNotifyURL,
	}

	// --- Kafka (optional, best-effort eventing) ---
	var events services.EventPublisher
	var producer *kafka.PaymentEventProducer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewPaymentEventProducer(cfg.KafkaBrokers, cfg.PaymentTopic, log)
		events = producer
	}

	// --- Dependency injection ---
	cartRepo := repository.NewGormCartRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	paymentRepo := repository.NewGormPaymentRepository(db)
	settlementStore := repository.NewGormSettlementStore(db)

	checkoutService := services.NewCheckoutService(cartRepo, productRepo, cfg.Currency, log)
	paymentService := services.NewPaymentService(checkoutService, creds, urls, log)
	settlementService := services.NewSettlementService(settlementStore, creds, cfg.Currency, events, log)

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.Register(r, cfg, routes.Controllers{
		Cart:     controllers.NewCartController(cartRepo, log),
		Checkout: controllers.NewCheckoutController(checkoutService, paymentService, log),
		Payment:  controllers.NewPaymentController(settlementService, paymentRepo, log),
		Order:    controllers.NewOrderController(orderRepo, log),
		Product:  controllers.NewProductController(productRepo, log),
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if producer != nil {
		producer.Close()
	}

	if err := database.Close(db); err != nil {
		log.Error("Database close error", zap.Error(err))
	}

	log.Info("Server stopped gracefully")
}
