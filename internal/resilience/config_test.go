package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sells-group/social-verify/internal/config"
)

func TestNewPolicy_Defaults(t *testing.T) {
	p := NewPolicy(config.FetchConfig{JitterFraction: -1})
	if p.Retry.MaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", p.Retry.MaxAttempts)
	}
	if p.Retry.InitialBackoff != time.Second {
		t.Errorf("expected 1s initial backoff, got %v", p.Retry.InitialBackoff)
	}
	if p.Retry.JitterFraction != 0.25 {
		t.Errorf("expected default jitter, got %v", p.Retry.JitterFraction)
	}
}

func TestNewPolicy_FromConfig(t *testing.T) {
	p := NewPolicy(config.FetchConfig{
		MaxAttempts:      5,
		InitialBackoffMs: 250,
		MaxBackoffMs:     4000,
		Multiplier:       3,
		JitterFraction:   0,
		FailureThreshold: 2,
		ResetTimeoutSecs: 10,
	})
	if p.Retry.MaxAttempts != 5 || p.Retry.InitialBackoff != 250*time.Millisecond ||
		p.Retry.MaxBackoff != 4*time.Second || p.Retry.Multiplier != 3 || p.Retry.JitterFraction != 0 {
		t.Errorf("unexpected retry config: %+v", p.Retry)
	}
	cb := p.Breakers.Get("facebook")
	if cb.cfg.FailureThreshold != 2 || cb.cfg.ResetTimeout != 10*time.Second {
		t.Errorf("unexpected breaker config: %+v", cb.cfg)
	}
}

func TestCall_RetriesThenOpens(t *testing.T) {
	p := NewPolicy(config.FetchConfig{MaxAttempts: 2, InitialBackoffMs: 1, MaxBackoffMs: 2, FailureThreshold: 2, ResetTimeoutSecs: 60})

	var calls int
	_, err := Call(context.Background(), p, "instagram", "https://instagram.com/x", func(_ context.Context) (string, error) {
		calls++
		return "", NewTransientError(errors.New("busy"), 503)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}

	_, err = Call(context.Background(), p, "instagram", "https://instagram.com/y", func(_ context.Context) (string, error) {
		t.Error("should not be called with an open circuit")
		return "", nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}

	got, err := Call(context.Background(), p, "facebook", "https://facebook.com/z", func(_ context.Context) (string, error) {
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Errorf("facebook breaker should be closed, got %q %v", got, err)
	}
}
