package balance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateProvider quotes 1 base = rate quote on a date.
type RateProvider interface {
	Rate(ctx context.Context, base, quote string, date time.Time) (decimal.Decimal, error)
}

// Normalizer converts amounts into the ledger currency.
type Normalizer struct {
	rates  RateProvider
	ledger string
	now    func() time.Time
}

func NewNormalizer(rates RateProvider, ledgerCurrency string) *Normalizer {
	return &Normalizer{
		rates:  rates,
		ledger: normalizeCode(ledgerCurrency),
		now:    time.Now,
	}
}

// SetClock replaces the clock used when no date is given (valuation date of opening balances).
func (n *Normalizer) SetClock(now func() time.Time) {
	n.now = now
}

func (n *Normalizer) LedgerCurrency() string {
	return n.ledger
}

// Convert returns amount in currency to. An empty from is taken to be the ledger currency.
// On failure the unconverted amount is returned together with the error.
func (n *Normalizer) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf *time.Time) (decimal.Decimal, error) {
	from = normalizeCode(from)
	to = normalizeCode(to)
	if from == "" {
		from = n.ledger
	}
	if to == "" {
		to = n.ledger
	}
	if from == to || amount.IsZero() {
		return amount, nil
	}
	if n.rates == nil {
		return amount, fmt.Errorf("%w: no rate provider for %s/%s", ErrNoRate, from, to)
	}
	date := n.now()
	if asOf != nil && !asOf.IsZero() {
		date = *asOf
	}
	rate, err := n.rates.Rate(ctx, from, to, date)
	if err != nil {
		return amount, err
	}
	if !rate.IsPositive() {
		return amount, fmt.Errorf("%w: non-positive rate %s for %s/%s", ErrNoRate, rate, from, to)
	}
	return amount.Mul(rate), nil
}

// ToLedger converts into the ledger currency.
func (n *Normalizer) ToLedger(ctx context.Context, amount decimal.Decimal, from string, asOf *time.Time) (decimal.Decimal, error) {
	return n.Convert(ctx, amount, from, n.ledger, asOf)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
