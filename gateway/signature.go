package gateway

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Sign computes the gateway signature for an outbound payment request:
// UPPER(MD5(merchant_id + order_reference + amount + currency + UPPER(MD5(secret)))).
// The amount is canonicalized to two decimal places. Notifications are
// verified against the identical computation.
func Sign(creds Credentials, orderReference string, amount int, currency string) string {
	payload := creds.MerchantID +
		orderReference +
		FormatAmount(amount) +
		currency +
		md5Upper(creds.MerchantSecret)
	return md5Upper(payload)
}

// VerifyNotification recomputes the expected signature for an inbound
// notification and compares it in constant time. It fails closed: any
// missing field, unparseable amount or mismatched digest returns false.
func VerifyNotification(creds Credentials, n *Notification) bool {
	if n == nil || n.OrderReference == "" || n.Amount == "" || n.Currency == "" || n.Signature == "" {
		return false
	}
	if n.MerchantID != "" && n.MerchantID != creds.MerchantID {
		return false
	}

	amount, err := ParseAmount(n.Amount)
	if err != nil {
		return false
	}

	want := Sign(creds, n.OrderReference, amount, n.Currency)
	got := strings.ToUpper(strings.TrimSpace(n.Signature))
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// FormatAmount renders minor-unit amounts in the gateway's canonical
// two-decimal form, e.g. 2200 -> "22.00".
func FormatAmount(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

// ParseAmount converts a gateway decimal string back to minor units.
// Accepts "22.00", "22.5" and "22".
func ParseAmount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	major := s
	minor := "0"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		major = s[:i]
		minor = s[i+1:]
		if minor == "" || len(minor) > 2 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		if len(minor) == 1 {
			minor += "0"
		}
	}

	maj, err := strconv.Atoi(major)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	min, err := strconv.Atoi(minor)
	if err != nil || min < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	if maj < 0 {
		return maj*100 - min, nil
	}
	return maj*100 + min, nil
}

func md5Upper(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
