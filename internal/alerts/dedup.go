package alerts

// DefaultProcessedCap bounds the in-memory set of dispatched alert keys.
const DefaultProcessedCap = 100

// ProcessedSet is a bounded, insertion-ordered set of alert identity keys.
// When the cap is exceeded the oldest key is evicted, so an alert older than
// the last cap dispatches may be delivered again. The set is touched only
// from the poller's single flow and needs no locking.
type ProcessedSet struct {
	cap   int
	seen  map[string]struct{}
	order []string
}

func NewProcessedSet(cap int) *ProcessedSet {
	if cap <= 0 {
		cap = DefaultProcessedCap
	}
	return &ProcessedSet{
		cap:  cap,
		seen: make(map[string]struct{}, cap),
	}
}

// ShouldDispatch reports whether the key has not been seen yet, recording it
// as seen when so.
func (s *ProcessedSet) ShouldDispatch(key string) bool {
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, key)
	if len(s.order) > s.cap {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.seen, oldest)
	}
	return true
}

func (s *ProcessedSet) Len() int {
	return len(s.seen)
}
