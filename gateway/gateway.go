// Package gateway implements the hosted-checkout contract of the external
// payment processor: the signed redirect payload and the verification of its
// asynchronous server-to-server notifications. The field concatenation order
// and hash algorithm are dictated by the gateway and must not change.
package gateway

// Credentials identify this merchant to the gateway. The secret is only
// ever used to derive signatures; it never appears in any payload.
type Credentials struct {
	MerchantID     string
	MerchantSecret string
}

// RedirectURLs are the hosted-checkout form targets.
type RedirectURLs struct {
	ReturnURL string
	CancelURL string
	NotifyURL string
}

// PaymentRequest is the signed payload submitted to the gateway's hosted
// checkout form. Transient; nothing is persisted until the gateway confirms.
type PaymentRequest struct {
	MerchantID      string `json:"merchant_id"`
	OrderReference  string `json:"order_reference"`
	Amount          int    `json:"amount"` // minor currency units
	AmountFormatted string `json:"amount_formatted"`
	Currency        string `json:"currency"`
	Items           string `json:"items"` // display line for the hosted form
	Signature       string `json:"signature"`
	ReturnURL       string `json:"return_url"`
	CancelURL       string `json:"cancel_url"`
	NotifyURL       string `json:"notify_url"`
}

// Notification is the inbound, untrusted callback body. The gateway posts it
// form-encoded to the notify URL; the reconciliation endpoint accepts the
// same fields as JSON.
type Notification struct {
	MerchantID       string `form:"merchant_id" json:"merchant_id"`
	OrderReference   string `form:"order_reference" json:"order_reference" binding:"required"`
	GatewayPaymentID string `form:"payment_id" json:"payment_id"`
	Amount           string `form:"amount" json:"amount" binding:"required"`
	Currency         string `form:"currency" json:"currency" binding:"required"`
	StatusCode       int    `form:"status_code" json:"status_code"`
	Signature        string `form:"signature" json:"signature" binding:"required"`
}
