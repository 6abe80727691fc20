// Package channel implements the set of channels the bot joins.
package channel

import (
	"sort"
	"strings"
	"sync"
)

// Set is the set of channel names the bot should be joined to. Names are
// lower-cased on every operation. No authorization happens here; callers
// check the role registry first. The zero Set is not ready to use; call New.
type Set struct {
	mu sync.Mutex
	m  map[string]bool
}

// New creates a set of the given channels.
func New(names ...string) *Set {
	s := &Set{m: make(map[string]bool, len(names))}
	for _, name := range names {
		s.m[strings.ToLower(name)] = true
	}
	return s
}

// Add inserts channels into the set and returns the ones actually inserted,
// in the order given. Channels already present are skipped.
func (s *Set) Add(names []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var added []string
	for _, name := range names {
		name = strings.ToLower(name)
		if name == "" || s.m[name] {
			continue
		}
		s.m[name] = true
		added = append(added, name)
	}
	return added
}

// Remove deletes channels from the set and returns the ones actually
// deleted, in the order given.
func (s *Set) Remove(names []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []string
	for _, name := range names {
		name = strings.ToLower(name)
		if !s.m[name] {
			continue
		}
		delete(s.m, name)
		removed = append(removed, name)
	}
	return removed
}

// Contains reports whether the set has a channel.
func (s *Set) Contains(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[strings.ToLower(name)]
}

// Names returns the sorted channel names.
func (s *Set) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := make([]string, 0, len(s.m))
	for name := range s.m {
		r = append(r, name)
	}
	sort.Strings(r)
	return r
}

// Len returns the number of channels in the set.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
