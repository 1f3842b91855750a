package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
	"github.com/AbuAzad2025/garage-manager-project-sub001/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExchangeRate is one quote: 1 BaseCode = Rate QuoteCode, effective from RateDate.
type ExchangeRate struct {
	ID        int             `gorm:"primary_key" json:"id"`
	BaseCode  string          `gorm:"size:3;not null;index:idx_fx_pair" json:"base_code"`
	QuoteCode string          `gorm:"size:3;not null;index:idx_fx_pair" json:"quote_code"`
	Rate      decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"rate"`
	RateDate  time.Time       `gorm:"not null;index" json:"rate_date"`
	Source    string          `gorm:"size:50" json:"source"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

var ErrNoRate = errors.New("no exchange rate")

// RateSource is anything that can quote base->quote on a date.
type RateSource interface {
	Rate(ctx context.Context, base, quote string, date time.Time) (decimal.Decimal, error)
}

// DBRateProvider quotes from the exchange_rates table.
type DBRateProvider struct {
	db *gorm.DB
}

func NewDBRateProvider(db *gorm.DB) *DBRateProvider {
	return &DBRateProvider{db: db}
}

// Rate returns the latest quote on or before date; the inverse pair is used when only it exists.
func (p *DBRateProvider) Rate(ctx context.Context, base, quote string, date time.Time) (decimal.Decimal, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if base == quote {
		return decimal.NewFromInt(1), nil
	}
	y, m, d := date.Date()
	cutoff := time.Date(y, m, d, 23, 59, 59, 0, date.Location())

	rate, found, err := p.latest(ctx, base, quote, cutoff)
	if err != nil {
		return decimal.Zero, err
	}
	if found {
		return rate, nil
	}
	inverse, found, err := p.latest(ctx, quote, base, cutoff)
	if err != nil {
		return decimal.Zero, err
	}
	if found {
		return decimal.NewFromInt(1).DivRound(inverse, 8), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s/%s on %s", ErrNoRate, base, quote, date.Format("2006-01-02"))
}

func (p *DBRateProvider) latest(ctx context.Context, base, quote string, cutoff time.Time) (decimal.Decimal, bool, error) {
	var row ExchangeRate
	err := p.db.WithContext(ctx).
		Where("base_code = ? AND quote_code = ? AND rate_date <= ? AND rate > 0", base, quote, cutoff).
		Order("rate_date DESC").Order("id DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	return row.Rate, true, nil
}

// CachedRateProvider memoises another source in redis per (pair, day).
// Without a redis connection it is a pass-through.
type CachedRateProvider struct {
	next RateSource
	ttl  time.Duration
}

func NewCachedRateProvider(next RateSource, ttl time.Duration) *CachedRateProvider {
	return &CachedRateProvider{next: next, ttl: ttl}
}

func (p *CachedRateProvider) Rate(ctx context.Context, base, quote string, date time.Time) (decimal.Decimal, error) {
	key := utils.FxRateCacheKey(base, quote, date)
	var cached string
	if ok, err := config.GetRedisObject(key, &cached); err == nil && ok {
		if rate, perr := decimal.NewFromString(cached); perr == nil {
			return rate, nil
		}
	}
	rate, err := p.next.Rate(ctx, base, quote, date)
	if err != nil {
		return rate, err
	}
	if serr := config.SetRedisObject(key, rate.String(), p.ttl); serr != nil {
		config.LogError(config.GetLogger(), "exchangeRate.go", "CachedRateProvider.Rate", "caching rate", key, serr)
	}
	return rate, nil
}
