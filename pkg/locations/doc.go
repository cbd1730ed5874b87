// Package locations serves the bus location catalog through a cache.
//
// The full, unfiltered catalog changes rarely, so it is the one upstream
// response that is memoized: GetAllLocations reads it through the cache under
// CatalogKey, sorted by rank. Free-text searches are unbounded and request
// specific, so Search always goes to the upstream API for them.
//
// Only successful envelopes are cached. A rejected catalog response is
// returned to the caller and the next call asks upstream again.
package locations
