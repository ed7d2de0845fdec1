package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces per-minute token (TPM) and request (RPM) budgets for a
// generation provider. Budgets refill a full minute after the previous fill.
type Limiter struct {
	mu sync.Mutex

	tpm int // Tokens per minute limit
	rpm int // Requests per minute limit

	tokens   int
	requests int
	lastFill time.Time
}

// NewLimiter creates a limiter with the given TPM and RPM budgets, both
// starting full.
func NewLimiter(tpm, rpm int) *Limiter {
	return &Limiter{
		tpm:      tpm,
		rpm:      rpm,
		tokens:   tpm,
		requests: rpm,
		lastFill: time.Now(),
	}
}

// Wait blocks until one request and tokensNeeded tokens are available within
// the current minute's budget, or the context is done. A tokensNeeded larger
// than the full TPM budget is capped at the budget; it costs the whole
// minute instead of waiting for a refill that can never satisfy it.
func (l *Limiter) Wait(ctx context.Context, tokensNeeded int) error {
	for {
		l.mu.Lock()

		if tokensNeeded > l.tpm {
			tokensNeeded = l.tpm
		}

		now := time.Now()
		elapsed := now.Sub(l.lastFill)
		if elapsed >= time.Minute {
			l.tokens = l.tpm
			l.requests = l.rpm
			l.lastFill = now
			elapsed = 0
		}

		if l.requests > 0 && l.tokens >= tokensNeeded {
			l.requests--
			l.tokens -= tokensNeeded
			l.mu.Unlock()
			return nil
		}

		wait := time.Minute - elapsed
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// SetTPM updates the tokens per minute limit
func (l *Limiter) SetTPM(tpm int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tpm = tpm
}

// SetRPM updates the requests per minute limit
func (l *Limiter) SetRPM(rpm int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rpm = rpm
}
