package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/AbuAzad2025/garage-manager-project-sub001/config"
)

/* balance cache keys */

// BalanceCacheKey is the key hosts use to cache a rendered balance for a subject.
func BalanceCacheKey(prefix string, subjectType string, id int) string {
	return fmt.Sprintf("%s:%s:%d", prefix, subjectType, id)
}

// BalanceViewCacheKey is the key hosts use to cache a balance breakdown for a subject.
func BalanceViewCacheKey(prefix string, subjectType string, id int) string {
	return fmt.Sprintf("%s:View:%s:%d", prefix, subjectType, id)
}

// ClearBalanceCache removes every cached rendition of one subject's balance.
func ClearBalanceCache(prefix string, subjectType string, id int) error {
	return config.RemoveRedisKey(
		BalanceCacheKey(prefix, subjectType, id),
		BalanceViewCacheKey(prefix, subjectType, id),
	)
}

/* fx cache */

func FxRateCacheKey(base, quote string, date time.Time) string {
	return fmt.Sprintf("FX:%s:%s:%s", strings.ToUpper(base), strings.ToUpper(quote), date.Format("2006-01-02"))
}
