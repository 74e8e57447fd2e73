package provider

import (
	"context"
	"time"

	"autosuggest/internal/domain"
	"autosuggest/internal/fetch"
)

// Latency delays every answer of Next by Delay. It gives up early when the
// request context ends.
type Latency struct {
	Next  fetch.Fetcher
	Delay time.Duration
}

// WithLatency wraps next; a zero delay returns next unchanged
func WithLatency(next fetch.Fetcher, delay time.Duration) fetch.Fetcher {
	if delay <= 0 {
		return next
	}
	return &Latency{Next: next, Delay: delay}
}

func (l *Latency) Fetch(ctx context.Context, text string) ([]domain.Suggestion, error) {
	timer := time.NewTimer(l.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return l.Next.Fetch(ctx, text)
}
