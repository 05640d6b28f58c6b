// Package latest holds the single-slot handoff between the decode loop
// and a polling consumer. Take consumes: a stalled sender can never
// cause the same record to be observed twice.
package latest

import (
	"sync"

	"camrx/internal/wire"
)

// Store is a mutex-guarded single slot. The synchronizer is the only
// writer, the host is the only reader; the lock makes write and
// read-clear mutually exclusive so a torn record is never observable.
type Store struct {
	mu    sync.Mutex
	rec   wire.Record
	valid bool
}

func NewStore() *Store {
	return &Store{}
}

// Publish overwrites the slot unconditionally. Lossy by design: only
// the newest decoded record matters to a polling consumer.
func (s *Store) Publish(rec wire.Record) {
	s.mu.Lock()
	s.rec = rec
	s.valid = true
	s.mu.Unlock()
}

// Take returns the held record and clears the slot in one step. A
// second Take with no intervening Publish reports ok=false.
func (s *Store) Take() (wire.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return wire.Record{}, false
	}
	rec := s.rec
	s.rec = wire.Record{}
	s.valid = false
	return rec, true
}
