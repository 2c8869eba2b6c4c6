package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Filter selects which games the schedule panel lists.
type Filter string

const (
	FilterToday    Filter = "today"
	FilterUpcoming Filter = "upcoming"
)

// ParseFilter accepts "today" or "upcoming". Anything else yields
// FilterToday and false.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case FilterToday:
		return FilterToday, true
	case FilterUpcoming:
		return FilterUpcoming, true
	}
	return FilterToday, false
}

// State is everything a render needs: both datasets and the active filter.
type State struct {
	Games       []Game
	Projections []Projection
	Filter      Filter
}

// WithFilter returns a copy of s with a different active filter.
func (s State) WithFilter(f Filter) State {
	s.Filter = f
	return s
}

// Snapshot is the Store's view of the last load.
type Snapshot struct {
	ID       string
	LoadedAt time.Time
	Data     Datasets
	Err      error
}

// Loaded reports whether a load has ever succeeded and the last one did not fail.
func (s Snapshot) Loaded() bool {
	return s.Err == nil && s.ID != ""
}

// State builds the render state for filter f.
func (s Snapshot) State(f Filter) State {
	return State{Games: s.Data.Games, Projections: s.Data.Projections, Filter: f}
}

// Store holds the current datasets. Loads replace them whole; nothing
// mutates a loaded dataset in place.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

// Replace installs a freshly loaded dataset pair and returns its snapshot ID.
func (s *Store) Replace(ds Datasets, at time.Time) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.snap = Snapshot{ID: id, LoadedAt: at, Data: ds}
	s.mu.Unlock()
	return id
}

// Fail records a failed load. The previous datasets are kept but the
// snapshot no longer counts as loaded until the next successful load.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	s.snap.Err = err
	s.mu.Unlock()
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
