package fetch

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Pacer spaces out page reads. It speeds up by 20% after each success, up to
// twice the initial rate, and halves on a rate-limit response, down to a
// quarter of it.
type Pacer struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	initial rate.Limit
	current rate.Limit
}

// NewPacer creates a Pacer allowing rps reads per second with the given burst.
func NewPacer(rps float64, burst int) *Pacer {
	if burst < 1 {
		burst = 1
	}
	r := rate.Limit(rps)
	return &Pacer{
		limiter: rate.NewLimiter(r, burst),
		initial: r,
		current: r,
	}
}

// Wait blocks until the next read is allowed.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// OnSuccess nudges the rate up.
func (p *Pacer) OnSuccess() {
	p.set(p.Limit() * 1.2)
}

// OnRateLimit halves the rate.
func (p *Pacer) OnRateLimit() {
	r := p.set(p.Limit() * 0.5)
	zap.L().Warn("rate limited, slowing page reads", zap.Float64("rps", float64(r)))
}

// Limit returns the current rate.
func (p *Pacer) Limit() rate.Limit {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Pacer) set(r rate.Limit) rate.Limit {
	p.mu.Lock()
	defer p.mu.Unlock()
	r = min(max(r, p.initial/4), p.initial*2)
	p.current = r
	p.limiter.SetLimit(r)
	return r
}
