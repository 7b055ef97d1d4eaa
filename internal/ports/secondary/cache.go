package secondary

// ReadCache defines the secondary port for the client-side read cache with
// stale invalidation and response-recency tracking. Keys are opaque strings
// owned by the services. Values live only for the process lifetime.
//
// Recency protocol: a reader calls Begin before issuing the remote call and
// hands the returned sequence to Put when the response arrives. Put rejects
// the write when a newer response for the key was applied in the meantime,
// or when the key was invalidated after the read began - an out-of-order
// response must never overwrite fresher state.
type ReadCache interface {
	// Begin reserves a recency sequence for a read that is about to start.
	Begin() uint64

	// Get returns the cached value for key, if fresh.
	Get(key string) (any, bool)

	// Put stores value under key if seq is still current for that key.
	// It reports whether the value was accepted.
	Put(key string, value any, seq uint64) bool

	// Invalidate drops the given keys and fences out responses from reads
	// begun before the invalidation.
	Invalidate(keys ...string)
}
