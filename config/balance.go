package config

import (
	"fmt"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// BalanceSettings holds the tunables of the balance engine.
type BalanceSettings struct {
	LedgerCurrency    string `env:"LEDGER_CURRENCY" envDefault:"ILS" validate:"required,len=3,alpha"`
	Tolerance         string `env:"BALANCE_TOLERANCE" envDefault:"0.01" validate:"required,numeric"`
	MaxUpdateAttempts int    `env:"BALANCE_UPDATE_MAX_ATTEMPTS" envDefault:"3" validate:"min=1,max=10"`
	LockTTLSeconds    int    `env:"BALANCE_LOCK_TTL_SECONDS" envDefault:"30" validate:"min=1"`
	PubSubTopic       string `env:"BALANCE_PUBSUB_TOPIC"`
	CachePrefix       string `env:"BALANCE_CACHE_PREFIX" envDefault:"Balance" validate:"required"`
	FxCacheTTLSeconds int    `env:"FX_CACHE_TTL_SECONDS" envDefault:"3600" validate:"min=0"`
}

var validate = validator.New()

// LoadBalanceSettings parses and validates the engine settings from the environment.
func LoadBalanceSettings() (*BalanceSettings, error) {
	s, err := env.ParseAs[BalanceSettings]()
	if err != nil {
		return nil, fmt.Errorf("config.LoadBalanceSettings: %w", err)
	}
	s.LedgerCurrency = strings.ToUpper(strings.TrimSpace(s.LedgerCurrency))
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("config.LoadBalanceSettings: %w", err)
	}
	return &s, nil
}

// DefaultBalanceSettings is what LoadBalanceSettings yields with an empty environment.
func DefaultBalanceSettings() *BalanceSettings {
	return &BalanceSettings{
		LedgerCurrency:    "ILS",
		Tolerance:         "0.01",
		MaxUpdateAttempts: 3,
		LockTTLSeconds:    30,
		CachePrefix:       "Balance",
		FxCacheTTLSeconds: 3600,
	}
}

func (s *BalanceSettings) ToleranceDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(s.Tolerance)
	if err != nil || d.IsNegative() {
		return decimal.NewFromFloat(0.01)
	}
	return d
}

func (s *BalanceSettings) LockTTL() time.Duration {
	return time.Duration(s.LockTTLSeconds) * time.Second
}

func (s *BalanceSettings) FxCacheTTL() time.Duration {
	return time.Duration(s.FxCacheTTLSeconds) * time.Second
}
