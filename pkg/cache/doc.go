// Package cache implements cache-aside lookups over pluggable backends.
//
// A backend satisfies Cache[V]. GetOrCreate serves a live entry when one
// exists and otherwise runs a factory, stores its result and returns it:
//
//	resp, err := cache.GetOrCreate(ctx, c, "AllBusLocations", func(ctx context.Context) (Catalog, error) {
//	    return fetch(ctx)
//	}, time.Hour)
//
// Expiry is absolute: an entry lives for ttl from the moment it was stored and
// reads never extend it. A failing factory stores nothing, so the next call
// runs the factory again.
//
// There is no per-key locking. Concurrent misses on the same key may each run
// the factory and the last Set wins. Factories are expected to be idempotent
// reads.
//
// Two backends are provided:
//
//   - Memory keeps entries in process, bounded by capacity with least recently
//     used eviction.
//   - Redis stores JSON-encoded values in Redis with native key expiry, so the
//     cache is shared between instances.
package cache
