package executor

import "time"

// MinPeriodSeconds is the shortest accounting window accepted at setup.
const MinPeriodSeconds = 3600

// DefaultGasUnits is the metered cost of one execution pass when no real
// meter is injected.
const DefaultGasUnits = 90_000

// Accessor cache keys and lifetime.
const (
	cachePrefix   = "module:"
	cacheDuration = 5 * time.Minute
)

func nonceCacheKey(wallet string) string    { return cachePrefix + wallet + ":nonce" }
func delegateCacheKey(wallet string) string { return cachePrefix + wallet + ":delegate" }
func limitCacheKey(wallet, key string) string {
	return cachePrefix + wallet + ":limit:" + key
}
