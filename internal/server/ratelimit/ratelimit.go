// Package ratelimit throttles login attempts with fixed-window counters.
package ratelimit

import "context"

// Limiter counts an attempt under key and reports whether it is within the
// limit. On a backend error the attempt is allowed and the error returned
// for logging.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Unlimited allows everything.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (bool, error) { return true, nil }
