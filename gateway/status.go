package gateway

// Gateway status codes as delivered in notifications.
const (
	StatusCodeSuccess     = 2
	StatusCodePending     = 0
	StatusCodeCanceled    = -1
	StatusCodeFailed      = -2
	StatusCodeChargedback = -3
)

// Payment outcomes derived from a status code.
const (
	OutcomeSuccess = "success"
	OutcomePending = "pending"
	OutcomeFailed  = "failed"
)

// Outcome maps a gateway status code to a payment outcome. Unknown codes
// return ok=false and must be rejected by the caller.
func Outcome(statusCode int) (string, bool) {
	switch statusCode {
	case StatusCodeSuccess:
		return OutcomeSuccess, true
	case StatusCodePending:
		return OutcomePending, true
	case StatusCodeCanceled, StatusCodeFailed, StatusCodeChargedback:
		return OutcomeFailed, true
	default:
		return "", false
	}
}
