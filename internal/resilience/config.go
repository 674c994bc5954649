package resilience

import (
	"context"
	"time"

	"github.com/sells-group/social-verify/internal/config"
)

// Policy combines retries with a breaker per key.
type Policy struct {
	Retry    RetryConfig
	Breakers *Breakers
}

// NewPolicy builds a Policy from fetch settings. Zero values fall back to
// the package defaults.
func NewPolicy(cfg config.FetchConfig) *Policy {
	retry := DefaultRetryConfig()
	if cfg.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.InitialBackoffMs > 0 {
		retry.InitialBackoff = time.Duration(cfg.InitialBackoffMs) * time.Millisecond
	}
	if cfg.MaxBackoffMs > 0 {
		retry.MaxBackoff = time.Duration(cfg.MaxBackoffMs) * time.Millisecond
	}
	if cfg.Multiplier > 0 {
		retry.Multiplier = cfg.Multiplier
	}
	if cfg.JitterFraction >= 0 {
		retry.JitterFraction = cfg.JitterFraction
	}

	breaker := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold > 0 {
		breaker.FailureThreshold = cfg.FailureThreshold
	}
	if cfg.ResetTimeoutSecs > 0 {
		breaker.ResetTimeout = time.Duration(cfg.ResetTimeoutSecs) * time.Second
	}
	// Only transient upstream failures count toward opening.
	breaker.ShouldTrip = IsTransient

	return &Policy{Retry: retry, Breakers: NewBreakers(breaker)}
}

// Call runs fn behind the breaker for key, retrying transient failures.
// An open circuit is not retried.
func Call[T any](ctx context.Context, p *Policy, key, target string, fn func(ctx context.Context) (T, error)) (T, error) {
	retry := p.Retry
	retry.OnRetry = RetryLogger(key, target)
	cb := p.Breakers.Get(key)
	return DoVal(ctx, retry, func(ctx context.Context) (T, error) {
		return ExecuteVal(ctx, cb, fn)
	})
}
