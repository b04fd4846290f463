package chat

import (
	"sync"
)

// Set of sessions with lookup by session ID. Display names are not keys on
// purpose: they are mutable and not unique within a room.
type memberSet struct {
	sync.RWMutex
	lookup map[string]*Session
}

// newMemberSet creates a new empty set.
func newMemberSet() *memberSet {
	return &memberSet{
		lookup: map[string]*Session{},
	}
}

// Len returns the size of the set right now.
func (s *memberSet) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.lookup)
}

// In checks if a session exists in this set.
func (s *memberSet) In(id string) bool {
	s.RLock()
	_, ok := s.lookup[id]
	s.RUnlock()
	return ok
}

// Add a session to this set. Re-adding the same session is harmless, the
// entry is keyed by its ID.
func (s *memberSet) Add(sess *Session) {
	s.Lock()
	s.lookup[sess.ID()] = sess
	s.Unlock()
}

// Remove a session from this set. Removing an absent session is a no-op,
// close paths may remove twice.
func (s *memberSet) Remove(id string) {
	s.Lock()
	delete(s.lookup, id)
	s.Unlock()
}

// Clear removes all sessions and returns the number removed.
func (s *memberSet) Clear() int {
	s.Lock()
	n := len(s.lookup)
	s.lookup = map[string]*Session{}
	s.Unlock()
	return n
}

// Each loops over every session while holding a read lock and applies fn to
// each element.
func (s *memberSet) Each(fn func(sess *Session)) {
	s.RLock()
	for _, sess := range s.lookup {
		fn(sess)
	}
	s.RUnlock()
}
