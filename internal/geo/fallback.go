package geo

import (
	"context"
	"log"
)

// withFallback runs the primary provider and substitutes the fallback on
// any failure. One-shot alternate path, not a retry loop. Context
// cancellation is terminal: a cancelled primary never triggers the fallback.
func withFallback[T any](ctx context.Context, name string, primary, fallback func(context.Context) (T, error)) (T, error) {
	value, err := primary(ctx)
	if err == nil {
		return value, nil
	}

	if ctx.Err() != nil {
		return value, ctx.Err()
	}

	log.Printf("geo: primary %s provider failed, using fallback: %v", name, err)
	providerFallbacks.WithLabelValues(name).Inc()

	return fallback(ctx)
}
