package cache

import (
	"time"
)

// TimeUntilNextMarketRefresh returns the duration until the next 17:00 in
// the provider's market timezone (Asia/Shanghai), when post-close daily
// bars become available. Cached ranges expire there so stale bars never
// outlive a trading day.
func TimeUntilNextMarketRefresh() time.Duration {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	now := time.Now().In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), 17, 0, 0, 0, loc)

	// Past today's refresh already; use tomorrow's
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}
