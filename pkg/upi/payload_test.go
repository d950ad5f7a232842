package upi

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildPayload(t *testing.T) {
	payload, err := BuildPayload(PaymentRequest{
		PayeeAddress: "shop@okbank",
		PayeeName:    "Corner Store",
		Amount:       decimal.RequireFromString("149.5"),
		Currency:     "inr",
		Note:         "grocery order",
		Reference:    "txn-123",
	})
	if err != nil {
		t.Fatalf("BuildPayload returned error: %v", err)
	}
	if !strings.HasPrefix(payload, "upi://pay?") {
		t.Fatalf("unexpected scheme: %s", payload)
	}

	values, err := url.ParseQuery(strings.TrimPrefix(payload, "upi://pay?"))
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	for key, want := range map[string]string{
		"pa": "shop@okbank",
		"pn": "Corner Store",
		"am": "149.50",
		"cu": "INR",
		"tn": "grocery order",
		"tr": "txn-123",
	} {
		if got := values.Get(key); got != want {
			t.Fatalf("param %s = %q, want %q", key, got, want)
		}
	}
}

func TestBuildPayloadOmitsZeroAmount(t *testing.T) {
	payload, err := BuildPayload(PaymentRequest{
		PayeeAddress: "shop@okbank",
		PayeeName:    "Corner Store",
	})
	if err != nil {
		t.Fatalf("BuildPayload returned error: %v", err)
	}
	if strings.Contains(payload, "am=") {
		t.Fatalf("zero amount should be omitted: %s", payload)
	}
}

func TestBuildPayloadRejectsBadInput(t *testing.T) {
	cases := []PaymentRequest{
		{PayeeAddress: "", PayeeName: "Store"},
		{PayeeAddress: "no-at-sign", PayeeName: "Store"},
		{PayeeAddress: "shop@okbank", PayeeName: ""},
		{PayeeAddress: "shop@okbank", PayeeName: "Store", Amount: decimal.RequireFromString("-1")},
	}
	for _, req := range cases {
		if _, err := BuildPayload(req); err == nil {
			t.Fatalf("expected error for %+v", req)
		}
	}
}
