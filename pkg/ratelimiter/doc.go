// Package ratelimiter provides token bucket rate limiting over a pluggable store.
//
// A bucket starts full at Capacity tokens and gains RefillRate tokens every
// RefillInterval, never exceeding Capacity. A request takes one or more tokens;
// when not enough are left the request is denied and the bucket is unchanged.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       100,
//		RefillRate:     10,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	result, err := limiter.Allow(ctx, clientIP)
//	if err != nil {
//		return err
//	}
//	if !result.Allowed() {
//		// wait result.RetryAfter()
//	}
//
// MemoryStore.Run drops buckets that have not been used for an hour and fits
// an errgroup:
//
//	g.Go(store.Run(ctx))
package ratelimiter
