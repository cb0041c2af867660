package cache

import (
	"math/rand/v2"
	"time"
)

// Default TTL window: 28 to 56 days.
const (
	DefaultTTLMin = 2419200 * time.Second
	DefaultTTLMax = 4838400 * time.Second
)

// TTLFunc returns the expiry for a new cache entry.
type TTLFunc func() time.Duration

// RandomTTL returns whole-second TTLs drawn uniformly from [minTTL, maxTTL]. Spreading
// expiries keeps entries written together from expiring together.
func RandomTTL(minTTL, maxTTL time.Duration) TTLFunc {
	lo := int64(minTTL / time.Second)
	hi := int64(maxTTL / time.Second)
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return func() time.Duration {
		return time.Duration(lo+rand.Int64N(hi-lo+1)) * time.Second
	}
}

// FixedTTL always returns d.
func FixedTTL(d time.Duration) TTLFunc {
	return func() time.Duration { return d }
}
