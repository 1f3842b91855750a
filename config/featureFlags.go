package config

import (
	"os"
	"strings"
)

// BalanceOptimisticLocking guards balance writes with a balance_version check-and-increment.
// On by default; set BALANCE_OPTIMISTIC_LOCKING=false to restore last-write-wins.
func BalanceOptimisticLocking() bool {
	return flagFromEnv("BALANCE_OPTIMISTIC_LOCKING", true)
}

// BalanceNotificationsEnabled controls the post-update cache invalidation / pubsub fan-out.
//
// Set via env:
// - BALANCE_NOTIFY=false
func BalanceNotificationsEnabled() bool {
	return flagFromEnv("BALANCE_NOTIFY", true)
}

func flagFromEnv(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
