package utils

import (
	"testing"
	"time"
)

func TestBalanceCacheKeys(t *testing.T) {
	if got := BalanceCacheKey("Balance", "Customer", 7); got != "Balance:Customer:7" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := BalanceViewCacheKey("Balance", "Supplier", 3); got != "Balance:View:Supplier:3" {
		t.Fatalf("unexpected key %s", got)
	}
}

func TestClearBalanceCache_NoRedisIsNoop(t *testing.T) {
	if err := ClearBalanceCache("Balance", "Customer", 1); err != nil {
		t.Fatalf("expected nil error without redis, got %v", err)
	}
}

func TestFxRateCacheKey(t *testing.T) {
	d := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	if got := FxRateCacheKey("usd", "ils", d); got != "FX:USD:ILS:2026-03-09" {
		t.Fatalf("unexpected key %s", got)
	}
}
