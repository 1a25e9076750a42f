package flyweight

// Stats is a point-in-time snapshot of a registry's sharing statistics.
//
// Hits and Misses count GetOrCreate requests only; Get, Has, and Seed
// do not affect them. Bytes is the accumulated payload size as reported
// by the registry's sizer, zero when no sizer is configured.
type Stats struct {
	// Hits is the number of requests served by an existing payload.
	Hits int64
	// Misses is the number of requests that constructed a new payload.
	Misses int64
	// Size is the number of distinct payloads held.
	Size int
	// Bytes is the accounted size of all held payloads.
	Bytes int64
}

// Requests returns the total number of GetOrCreate requests.
func (s Stats) Requests() int64 {
	return s.Hits + s.Misses
}

// HitRate returns the fraction of requests served by an existing payload.
// Returns 0 when no requests have been made.
func (s Stats) HitRate() float64 {
	total := s.Requests()
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// SharingRatio returns the average number of requests served per
// distinct payload. A ratio above 1 means payloads are being shared.
// Returns 0 when the registry is empty.
func (s Stats) SharingRatio() float64 {
	if s.Size == 0 {
		return 0
	}
	return float64(s.Requests()) / float64(s.Size)
}

// Stats returns the registry's current sharing statistics.
func (r *Registry[K, V]) Stats() Stats {
	r.mu.RLock()
	size := len(r.entries)
	r.mu.RUnlock()

	return Stats{
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
		Size:   size,
		Bytes:  r.bytes.Load(),
	}
}
