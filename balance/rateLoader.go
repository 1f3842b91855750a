package balance

import (
	"context"
	"strings"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/shopspring/decimal"
)

// rateKey is one (pair, day) quote. Providers resolve rates per calendar day, so every
// timestamp on the same day shares a key.
type rateKey struct {
	Base  string
	Quote string
	Day   time.Time
}

// LoadingRates memoises a RateProvider for the lifetime of one run (a refresh, a sweep, a
// rebuild). Every lookup is dispatched on its own; failed lookups are not remembered.
type LoadingRates struct {
	loader *dataloader.Loader[rateKey, decimal.Decimal]
}

func NewLoadingRates(next RateProvider) *LoadingRates {
	reader := &rateReader{next: next}
	return &LoadingRates{
		loader: dataloader.NewBatchedLoader(reader.getRates, dataloader.WithBatchCapacity[rateKey, decimal.Decimal](1)),
	}
}

func (l *LoadingRates) Rate(ctx context.Context, base, quote string, date time.Time) (decimal.Decimal, error) {
	y, m, d := date.Date()
	key := rateKey{
		Base:  strings.ToUpper(strings.TrimSpace(base)),
		Quote: strings.ToUpper(strings.TrimSpace(quote)),
		Day:   time.Date(y, m, d, 0, 0, 0, 0, date.Location()),
	}
	rate, err := l.loader.Load(ctx, key)()
	if err != nil {
		l.loader.Clear(ctx, key)
	}
	return rate, err
}

type rateReader struct {
	next RateProvider
}

func (r *rateReader) getRates(ctx context.Context, keys []rateKey) []*dataloader.Result[decimal.Decimal] {
	results := make([]*dataloader.Result[decimal.Decimal], len(keys))
	for i, k := range keys {
		rate, err := r.next.Rate(ctx, k.Base, k.Quote, k.Day)
		results[i] = &dataloader.Result[decimal.Decimal]{Data: rate, Error: err}
	}
	return results
}
