// Package upi builds UPI deep-link payment payloads. The returned string
// is what clients encode into a QR image; rendering stays on the client.
package upi

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentRequest carries the fields embedded into a upi://pay link.
type PaymentRequest struct {
	PayeeAddress string // the VPA, e.g. shop@okbank
	PayeeName    string
	Amount       decimal.Decimal
	Currency     string
	Note         string
	Reference    string // external transaction id, becomes tr=
}

// BuildPayload renders the request as a upi://pay deep link.
func BuildPayload(req PaymentRequest) (string, error) {
	address := strings.TrimSpace(req.PayeeAddress)
	if address == "" || !strings.Contains(address, "@") {
		return "", fmt.Errorf("payee address %q is not a valid VPA", req.PayeeAddress)
	}
	if strings.TrimSpace(req.PayeeName) == "" {
		return "", fmt.Errorf("payee name is required")
	}
	if req.Amount.IsNegative() {
		return "", fmt.Errorf("amount cannot be negative")
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "INR"
	}

	values := url.Values{}
	values.Set("pa", address)
	values.Set("pn", strings.TrimSpace(req.PayeeName))
	if req.Amount.IsPositive() {
		values.Set("am", req.Amount.StringFixed(2))
	}
	values.Set("cu", currency)
	if note := strings.TrimSpace(req.Note); note != "" {
		values.Set("tn", note)
	}
	if ref := strings.TrimSpace(req.Reference); ref != "" {
		values.Set("tr", ref)
	}

	return "upi://pay?" + values.Encode(), nil
}
