package scanner

import (
	"time"

	"golang.org/x/time/rate"
)

// newPacer admits the first symbol immediately and each later one no sooner
// than interval after the previous. A zero interval disables pacing.
func newPacer(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
