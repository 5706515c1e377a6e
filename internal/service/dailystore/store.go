package dailystore

import (
	"sync"
)

// Store is the set of formatted numbers already produced on one calendar date.
// Every entry in the set was produced on Date().
type Store struct {
	mu         sync.Mutex
	date       string
	seen       map[string]struct{}
	order      []string
	totalCount int
}

// New creates an empty store for the given date string
func New(date string) *Store {
	return &Store{
		date: date,
		seen: make(map[string]struct{}),
	}
}

// newFromList seeds a store from a persisted list. The total count is the list
// length, matching what was recorded when the list was saved.
func newFromList(date string, numbers []string) *Store {
	s := New(date)
	for _, n := range numbers {
		if _, ok := s.seen[n]; ok {
			continue
		}
		s.seen[n] = struct{}{}
		s.order = append(s.order, n)
	}
	s.totalCount = len(numbers)
	return s
}

// Date returns the calendar date the store's entries belong to
func (s *Store) Date() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.date
}

// Contains reports whether formatted was already produced today
func (s *Store) Contains(formatted string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[formatted]
	return ok
}

// TryAdd records formatted if it is new and reports whether it was inserted
func (s *Store) TryAdd(formatted string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[formatted]; ok {
		return false
	}
	s.insert(formatted)
	s.totalCount++
	return true
}

// ForceAdd records formatted without a collision check. The total count is
// always incremented.
func (s *Store) ForceAdd(formatted string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[formatted]; !ok {
		s.insert(formatted)
	}
	s.totalCount++
}

func (s *Store) insert(formatted string) {
	s.seen[formatted] = struct{}{}
	s.order = append(s.order, formatted)
}

// Len returns the number of distinct entries for the day
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// TotalCount returns the number of successful generations recorded for the day
func (s *Store) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCount
}

// Snapshot returns the entries in insertion order
func (s *Store) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// RollOver clears the store when today differs from its date. The total count
// is reset together with the set. It reports whether a rollover happened.
func (s *Store) RollOver(today string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.date == today {
		return false
	}
	s.reset(today)
	return true
}

// Reset empties the store and moves it to the given date
func (s *Store) Reset(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(date)
}

func (s *Store) reset(date string) {
	s.date = date
	s.seen = make(map[string]struct{})
	s.order = nil
	s.totalCount = 0
}
