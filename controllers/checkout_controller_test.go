package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/gateway"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/middleware"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/models"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubCheckout struct {
	summary *models.CheckoutSummary
	err     error
}

func (s *stubCheckout) BuildSummary(_ context.Context, _ uuid.UUID) (*models.CheckoutSummary, error) {
	return s.summary, s.err
}

type stubPayments struct {
	req *gateway.PaymentRequest
	err error
}

func (s *stubPayments) CreatePaymentRequest(_ context.Context, _ uuid.UUID) (*gateway.PaymentRequest, error) {
	return s.req, s.err
}

func checkoutRouter(checkout services.CheckoutService, payments services.PaymentService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cc := NewCheckoutController(checkout, payments, zap.NewNop())
	authed := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			if userID != uuid.Nil {
				c.Set(middleware.UserContextKey, userID)
			}
			h(c)
		}
	}
	r.GET("/checkout/summary", authed(cc.Summary))
	r.POST("/checkout/payment", authed(cc.CreatePayment))
	return r
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestCheckoutSummary_OK(t *testing.T) {
	userID := uuid.New()
	summary := &models.CheckoutSummary{TotalAmount: 2200, Currency: "LKR"}
	r := checkoutRouter(&stubCheckout{summary: summary}, &stubPayments{}, userID)

	w := doRequest(r, http.MethodGet, "/checkout/summary")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_amount":2200`)
	assert.Contains(t, w.Body.String(), `"currency":"LKR"`)
}

func TestCheckoutSummary_Unauthenticated(t *testing.T) {
	r := checkoutRouter(&stubCheckout{}, &stubPayments{}, uuid.Nil)

	w := doRequest(r, http.MethodGet, "/checkout/summary")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutSummary_ProductUnavailable(t *testing.T) {
	userID := uuid.New()
	offending := uuid.New()
	stub := &stubCheckout{err: &services.ProductUnavailableError{ProductIDs: []uuid.UUID{offending}}}
	r := checkoutRouter(stub, &stubPayments{}, userID)

	w := doRequest(r, http.MethodGet, "/checkout/summary")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), offending.String())
}

func TestCreatePayment_OK(t *testing.T) {
	userID := uuid.New()
	req := &gateway.PaymentRequest{
		MerchantID:      "M100123",
		OrderReference:  gateway.NewOrderReference(userID),
		Amount:          2200,
		AmountFormatted: "22.00",
		Currency:        "LKR",
		Signature:       "ABC123",
	}
	r := checkoutRouter(&stubCheckout{}, &stubPayments{req: req}, userID)

	w := doRequest(r, http.MethodPost, "/checkout/payment")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"amount_formatted":"22.00"`)
	assert.Contains(t, w.Body.String(), `"signature":"ABC123"`)
}

func TestCreatePayment_EmptyCart(t *testing.T) {
	userID := uuid.New()
	r := checkoutRouter(&stubCheckout{}, &stubPayments{err: services.ErrInvalidSummary}, userID)

	w := doRequest(r, http.MethodPost, "/checkout/payment")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePayment_ProductUnavailable(t *testing.T) {
	userID := uuid.New()
	offending := uuid.New()
	stub := &stubPayments{err: &services.ProductUnavailableError{ProductIDs: []uuid.UUID{offending}}}
	r := checkoutRouter(&stubCheckout{}, stub, userID)

	w := doRequest(r, http.MethodPost, "/checkout/payment")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), offending.String())
}
