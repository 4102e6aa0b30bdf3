package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/gateway"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/middleware"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubSettlement struct {
	result *services.SettlementResult
	err    error
	got    *gateway.Notification
}

func (s *stubSettlement) Settle(_ context.Context, n *gateway.Notification) (*services.SettlementResult, error) {
	s.got = n
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func notifyForm(ref string) url.Values {
	return url.Values{
		"merchant_id":     {"M100123"},
		"order_reference": {ref},
		"payment_id":      {"GW-0001"},
		"amount":          {"22.00"},
		"currency":        {"LKR"},
		"status_code":     {"2"},
		"signature":       {"ABCDEF0123456789ABCDEF0123456789"},
	}
}

func newNotifyRouter(settlement services.SettlementService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pc := NewPaymentController(settlement, nil, zap.NewNop())
	r.POST("/payments/notify", pc.Notify)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNotify_Success(t *testing.T) {
	ref := gateway.NewOrderReference(uuid.New())
	stub := &stubSettlement{result: &services.SettlementResult{
		OrderID: uuid.New(), PaymentID: uuid.New(), Status: "success",
	}}
	r := newNotifyRouter(stub)

	w := postForm(r, "/payments/notify", notifyForm(ref))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String(), "notify ack carries no body")

	// The form fields reach the service intact.
	assert.NotNil(t, stub.got)
	assert.Equal(t, ref, stub.got.OrderReference)
	assert.Equal(t, "22.00", stub.got.Amount)
	assert.Equal(t, 2, stub.got.StatusCode)
}

func TestNotify_VerificationFailed(t *testing.T) {
	stub := &stubSettlement{err: services.ErrVerificationFailed}
	r := newNotifyRouter(stub)

	w := postForm(r, "/payments/notify", notifyForm(gateway.NewOrderReference(uuid.New())))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestNotify_AmountMismatch(t *testing.T) {
	stub := &stubSettlement{err: services.ErrAmountMismatch}
	r := newNotifyRouter(stub)

	w := postForm(r, "/payments/notify", notifyForm(gateway.NewOrderReference(uuid.New())))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotify_SettlementFailureIsRetryable(t *testing.T) {
	stub := &stubSettlement{err: services.ErrSettlementFailed}
	r := newNotifyRouter(stub)

	w := postForm(r, "/payments/notify", notifyForm(gateway.NewOrderReference(uuid.New())))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNotify_MalformedStatusCode(t *testing.T) {
	stub := &stubSettlement{}
	r := newNotifyRouter(stub)

	form := notifyForm(gateway.NewOrderReference(uuid.New()))
	form.Set("status_code", "not-a-number")

	w := postForm(r, "/payments/notify", form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, stub.got, "binding failure must not reach the service")
}

// savePaymentRouter injects the user id the way AuthMiddleware would after a
// successful token check.
func savePaymentRouter(settlement services.SettlementService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pc := NewPaymentController(settlement, nil, zap.NewNop())
	r.POST("/payments/save", func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.UserContextKey, userID)
		}
		pc.SavePayment(c)
	})
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSavePayment_Success(t *testing.T) {
	userID := uuid.New()
	ref := gateway.NewOrderReference(userID)
	stub := &stubSettlement{result: &services.SettlementResult{
		OrderID: uuid.New(), PaymentID: uuid.New(), Status: "success",
	}}
	r := savePaymentRouter(stub, userID)

	w := postJSON(r, "/payments/save",
		`{"order_reference":"`+ref+`","amount":"22.00","currency":"LKR","status_code":2,"signature":"ABC"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
	assert.Equal(t, ref, stub.got.OrderReference)
}

func TestSavePayment_ForeignReferenceRejected(t *testing.T) {
	caller := uuid.New()
	victim := uuid.New()
	stub := &stubSettlement{}
	r := savePaymentRouter(stub, caller)

	w := postJSON(r, "/payments/save",
		`{"order_reference":"`+gateway.NewOrderReference(victim)+`","amount":"22.00","currency":"LKR","status_code":2,"signature":"ABC"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, stub.got, "foreign reference must not reach settlement")
}

func TestSavePayment_Unauthenticated(t *testing.T) {
	stub := &stubSettlement{}
	r := savePaymentRouter(stub, uuid.Nil)

	w := postJSON(r, "/payments/save", `{"order_reference":"x"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSavePayment_VerificationFailed(t *testing.T) {
	userID := uuid.New()
	ref := gateway.NewOrderReference(userID)
	stub := &stubSettlement{err: services.ErrVerificationFailed}
	r := savePaymentRouter(stub, userID)

	w := postJSON(r, "/payments/save",
		`{"order_reference":"`+ref+`","amount":"22.00","currency":"LKR","status_code":2,"signature":"BAD"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "verification failed")
}
