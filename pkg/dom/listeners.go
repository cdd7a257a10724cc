package dom

import (
	"slices"
	"sync"
)

// listenerSet is a registry of event listeners keyed by event type.
type listenerSet struct {
	mu        sync.Mutex
	listeners map[string]map[int]Listener
	nextID    int
}

func (s *listenerSet) add(eventType string, listener Listener) func() {
	if listener == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.listeners == nil {
		s.listeners = make(map[string]map[int]Listener)
	}
	byID := s.listeners[eventType]
	if byID == nil {
		byID = make(map[int]Listener)
		s.listeners[eventType] = byID
	}
	id := s.nextID
	s.nextID++
	byID[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners[eventType], id)
	}
}

func (s *listenerSet) count(eventType string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners[eventType])
}

func (s *listenerSet) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, byID := range s.listeners {
		n += len(byID)
	}
	return n
}

// dispatch calls every listener for ev.Type in registration order. The set
// is snapshotted first so listeners may remove themselves.
func (s *listenerSet) dispatch(ev Event) {
	s.mu.Lock()
	byID := s.listeners[ev.Type]
	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		s.mu.Lock()
		l, ok := s.listeners[ev.Type][id]
		s.mu.Unlock()
		if ok {
			l(ev)
		}
	}
}
