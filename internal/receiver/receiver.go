// Package receiver owns the decode-loop lifecycle: transport handle,
// background goroutine, and the public start/stop/take surface.
package receiver

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"camrx/internal/framing"
	"camrx/internal/latest"
	"camrx/internal/observability"
	"camrx/internal/wire"
)

var ErrAlreadyStarted = errors.New("receiver: already started")

// OpenFunc opens the byte transport. Injected so hosts pick the real
// serial port and tests pick a fake.
type OpenFunc func() (framing.Port, error)

// Receiver runs one frame synchronizer against one transport. It is
// not restartable: construct a fresh Receiver after Stop.
type Receiver struct {
	open OpenFunc

	mu      sync.Mutex
	port    framing.Port
	stop    chan struct{}
	done    chan struct{}
	started bool
	stopped bool
	fatal   error

	store *latest.Store
}

func New(open OpenFunc) *Receiver {
	return &Receiver{
		open:  open,
		store: latest.NewStore(),
	}
}

// Start opens the transport and launches the decode loop. An open
// failure leaves nothing running. Calling Start twice without an
// intervening Stop is an error rather than a leaked goroutine.
func (r *Receiver) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}

	port, err := r.open()
	if err != nil {
		return fmt.Errorf("receiver: open transport: %w", err)
	}

	r.port = port
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	r.started = true

	go r.run(framing.NewSynchronizer(port, r.store))

	log.Info().Msg("receiver started")
	return nil
}

func (r *Receiver) run(machine *framing.Synchronizer) {
	defer close(r.done)

	err := machine.Run(r.stop)
	if err != nil {
		r.mu.Lock()
		r.fatal = err
		r.mu.Unlock()
		log.Error().Err(err).Msg("decode loop terminated by transport error")
		return
	}
	log.Info().Msg("decode loop stopped")
}

// Stop signals the loop, waits for it to exit, and closes the
// transport. Safe to call when the loop already died of a transport
// error, and safe to call more than once.
func (r *Receiver) Stop() {
	r.mu.Lock()
	if !r.started || r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	stop, done, port := r.stop, r.done, r.port
	r.mu.Unlock()

	close(stop)
	<-done
	if err := port.Close(); err != nil {
		log.Warn().Err(err).Msg("transport close failed")
	}
	log.Info().Msg("receiver stopped")
}

// TakeLatest drains the most recently decoded record. The slot clears
// on read, so a stalled sender never yields the same record twice.
func (r *Receiver) TakeLatest() (wire.Record, bool) {
	rec, ok := r.store.Take()
	observability.RecordTake(ok)
	return rec, ok
}

// Err reports the transport-fatal error that killed the decode loop,
// or nil while the loop is healthy or was stopped cleanly.
func (r *Receiver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fatal
}

// Done is closed when the decode loop exits for any reason. Hosts
// watch it to notice fatal transport death without polling.
func (r *Receiver) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		// Never started: nothing will ever close this channel, which
		// matches "the loop has not exited" for a loop that never ran.
		return make(chan struct{})
	}
	return r.done
}
