package latest

import (
	"sync"
	"testing"

	"camrx/internal/wire"
)

func TestTakeConsumes(t *testing.T) {
	s := NewStore()
	s.Publish(wire.Record{X: 1, Y: 2, W: 3, H: 4, Timestamp: 5})

	rec, ok := s.Take()
	if !ok {
		t.Fatal("first Take returned empty")
	}
	if rec != (wire.Record{X: 1, Y: 2, W: 3, H: 4, Timestamp: 5}) {
		t.Fatalf("unexpected record: %+v", rec)
	}

	if _, ok := s.Take(); ok {
		t.Fatal("second Take should be empty until the next Publish")
	}
}

func TestTakeEmptyStore(t *testing.T) {
	s := NewStore()
	if rec, ok := s.Take(); ok {
		t.Fatalf("Take on fresh store returned %+v", rec)
	}
}

func TestPublishOverwrites(t *testing.T) {
	s := NewStore()
	s.Publish(wire.Record{X: 1})
	s.Publish(wire.Record{X: 2})
	s.Publish(wire.Record{X: 3})

	rec, ok := s.Take()
	if !ok || rec.X != 3 {
		t.Fatalf("expected newest record, got %+v ok=%v", rec, ok)
	}
}

func TestConcurrentPublishTake(t *testing.T) {
	s := NewStore()
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i <= n; i++ {
			s.Publish(wire.Record{X: uint16(i), Y: uint16(i), W: uint16(i), H: uint16(i)})
		}
	}()

	var last uint16
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			rec, ok := s.Take()
			if !ok {
				continue
			}
			// A record must never be torn across fields.
			if rec.Y != rec.X || rec.W != rec.X || rec.H != rec.X {
				t.Errorf("torn record observed: %+v", rec)
				return
			}
			// Publishes are monotonic, so takes must be too.
			if rec.X < last {
				t.Errorf("takes went backwards: %d after %d", rec.X, last)
				return
			}
			last = rec.X
		}
	}()
	wg.Wait()
}
