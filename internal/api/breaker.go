package api

import (
	"net/http"

	"careerscope/internal/config"
	"careerscope/internal/errors"

	"github.com/sony/gobreaker/v2"
)

// Breaker wraps outbound service calls with circuit breaker protection.
// Only transport-level failures count against the breaker; an HTTP response
// with an error status is still a response and must surface its detail to
// the user rather than trip the circuit.
type Breaker struct {
	cb *gobreaker.CircuitBreaker[*http.Response]
}

// NewBreaker creates a circuit breaker for one endpoint family.
// Returns nil when the breaker is disabled; a nil Breaker executes calls
// directly.
func NewBreaker(name string, cfg *config.CircuitBreakerConfig, logger *errors.Logger) *Breaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker[*http.Response](settings)}
}

// Execute runs the provided round trip with circuit breaker protection
func (b *Breaker) Execute(fn func() (*http.Response, error)) (*http.Response, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// IsHealthy returns true if the circuit breaker is in closed state
func (b *Breaker) IsHealthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}
