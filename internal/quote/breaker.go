package quote

import (
	"time"

	"github.com/sony/gobreaker"
)

// newBreaker opens after maxFailures consecutive upstream failures and lets a
// single probe through once openTimeout has passed.
func newBreaker(name string, maxFailures uint32, openTimeout time.Duration) *gobreaker.CircuitBreaker {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openTimeout,
	}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= maxFailures
	}
	return gobreaker.NewCircuitBreaker(st)
}
