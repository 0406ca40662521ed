package orchestration

import "sync"

// CompletionSet tracks which scenarios have finished. It is owned by the
// orchestrator: runner callbacks insert from their worker goroutines while
// the heartbeat reads it, so access is mutex-guarded.
type CompletionSet struct {
	mu   sync.Mutex
	done map[int]struct{}
}

// NewCompletionSet returns an empty set.
func NewCompletionSet() *CompletionSet {
	return &CompletionSet{done: make(map[int]struct{})}
}

// Mark records scenario id as completed.
func (s *CompletionSet) Mark(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done[id] = struct{}{}
}

// Count returns the number of completed scenarios.
func (s *CompletionSet) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.done)
}

// Contains reports whether scenario id has completed.
func (s *CompletionSet) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.done[id]
	return ok
}
