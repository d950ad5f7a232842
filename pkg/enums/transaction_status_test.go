package enums

import (
	"testing"
	"time"
)

func TestTransactionStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to TransactionStatus
		want     bool
	}{
		{TransactionStatusPending, TransactionStatusSuccess, true},
		{TransactionStatusPending, TransactionStatusFailed, true},
		{TransactionStatusPending, TransactionStatusPending, false},
		{TransactionStatusSuccess, TransactionStatusFailed, false},
		{TransactionStatusFailed, TransactionStatusSuccess, false},
		{TransactionStatusFailed, TransactionStatusFailed, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTransactionStatusTerminal(t *testing.T) {
	if TransactionStatusPending.IsTerminal() {
		t.Fatal("pending must not be terminal")
	}
	if !TransactionStatusSuccess.IsTerminal() || !TransactionStatusFailed.IsTerminal() {
		t.Fatal("success and failed must be terminal")
	}
}

func TestTimeWindowBounds(t *testing.T) {
	now := time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC)

	from, to, err := TimeWindowToday.Bounds(now)
	if err != nil {
		t.Fatalf("today bounds: %v", err)
	}
	if from.Hour() != 0 || from.Day() != 15 || !to.Equal(now) {
		t.Fatalf("unexpected today bounds %s - %s", from, to)
	}

	from, _, err = TimeWindowTrailing30.Bounds(now)
	if err != nil {
		t.Fatalf("trailing bounds: %v", err)
	}
	if now.Sub(from) != 30*24*time.Hour {
		t.Fatalf("trailing window should span 30 days, got %s", now.Sub(from))
	}

	from, _, err = TimeWindowYearToDate.Bounds(now)
	if err != nil {
		t.Fatalf("ytd bounds: %v", err)
	}
	if from.Year() != 2026 || from.Month() != time.January || from.Day() != 1 {
		t.Fatalf("unexpected ytd start %s", from)
	}

	if _, _, err := TimeWindow("weekly").Bounds(now); err == nil {
		t.Fatal("expected error for unknown window")
	}
}
