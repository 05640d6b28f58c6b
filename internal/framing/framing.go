// Package framing owns the streaming frame synchronizer: a byte-driven
// state machine that hunts for frame boundaries on a lossy serial link,
// validates length, trailer, and CRC-8, and publishes decoded records.
//
// Ownership boundary:
// - Port transport capability contract
// - resynchronization state machine
// - framing/checksum error classification
package framing

import (
	"github.com/rs/zerolog/log"

	"camrx/internal/crc8"
	"camrx/internal/latest"
	"camrx/internal/observability"
	"camrx/internal/wire"
)

// Port is the minimal transport capability the synchronizer consumes.
// Read returns whatever arrived before the port's configured deadline:
// n may be less than len(p), and a quiet interval yields (0, nil). A
// non-nil error means the transport itself has failed and the decode
// loop must terminate.
type Port interface {
	Read(p []byte) (int, error)
	Close() error
}

// SyncState is the synchronizer phase between bytes.
type SyncState int

const (
	// StateSeekSOF1 discards garbage one byte at a time until the first
	// start-marker byte appears. This is the resynchronization anchor.
	StateSeekSOF1 SyncState = iota
	StateSeekSOF2
	StateFrame
)

// Synchronizer consumes bytes from a Port one frame attempt at a time
// and publishes every fully validated record into the store. It is
// intrinsically sequential; run exactly one Run per Synchronizer.
type Synchronizer struct {
	port  Port
	store *latest.Store
	buf   [wire.BodySize + wire.TrailerSize]byte
	one   [1]byte
}

func NewSynchronizer(port Port, store *latest.Store) *Synchronizer {
	return &Synchronizer{port: port, store: store}
}

// Run decodes frames until stop is closed or the transport fails.
// Framing and checksum errors are steady-state noise on a real link:
// they are counted, logged at debug, and recovered by resynchronizing.
// Only a transport error is returned. The stop signal is observed
// between reads, so shutdown can lag by up to one read timeout.
func (s *Synchronizer) Run(stop <-chan struct{}) error {
	state := StateSeekSOF1
	for {
		select {
		case <-stop:
			return nil
		default:
		}

		switch state {
		case StateSeekSOF1:
			b, ok, err := s.readByte()
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if b == wire.SOF1 {
				state = StateSeekSOF2
			} else {
				observability.RecordBytesDiscarded(1)
			}

		case StateSeekSOF2:
			b, ok, err := s.readByte()
			if err != nil {
				return err
			}
			if ok && b == wire.SOF2 {
				state = StateFrame
				continue
			}
			// A byte that fails the second check is dropped outright,
			// never re-tested as a first-marker candidate. The sender
			// side depends on this exact behavior; do not change it.
			if ok {
				observability.RecordBytesDiscarded(2)
			}
			state = StateSeekSOF1

		case StateFrame:
			if err := s.readFrame(); err != nil {
				return err
			}
			// One attempt is one full header-to-trailer cycle or one
			// abort; either way the machine restarts clean.
			state = StateSeekSOF1
		}
	}
}

// readFrame runs one frame attempt after the start marker matched. A
// nil return means the attempt finished (published or discarded); an
// error is always transport-fatal.
func (s *Synchronizer) readFrame() error {
	lb, ok, err := s.readByte()
	if err != nil {
		return err
	}
	if !ok {
		observability.RecordFramingError("short_length")
		log.Debug().Msg("timed out waiting for length byte")
		return nil
	}
	if lb != wire.BodySize {
		observability.RecordFramingError("bad_length")
		log.Debug().
			Uint8("got", lb).
			Uint8("want", wire.BodySize).
			Msg("frame length mismatch")
		return nil
	}

	want := wire.BodySize + wire.TrailerSize
	n, err := s.readFull(s.buf[:want])
	if err != nil {
		return err
	}
	if n != want {
		observability.RecordFramingError("short_body")
		log.Debug().Int("got", n).Int("want", want).Msg("frame body truncated")
		return nil
	}

	body := s.buf[:wire.BodySize]
	trailer := s.buf[wire.BodySize:want]
	if trailer[0] != wire.EOF1 || trailer[1] != wire.EOF2 {
		observability.RecordFramingError("bad_trailer")
		log.Debug().Hex("trailer", trailer).Msg("end marker mismatch")
		return nil
	}

	payload := body[:wire.PayloadSize]
	received := body[wire.PayloadSize]
	computed := crc8.Checksum(payload)
	if received != computed {
		observability.RecordChecksumFailure()
		log.Debug().
			Uint8("received", received).
			Uint8("computed", computed).
			Msg("crc mismatch, frame discarded")
		return nil
	}

	rec, err := wire.DecodeRecord(payload)
	if err != nil {
		// Unreachable: payload length is pinned by the checks above.
		log.Error().Err(err).Msg("payload decode failed")
		return nil
	}
	s.store.Publish(rec)
	observability.RecordFrameDecoded()
	log.Debug().
		Uint16("x", rec.X).
		Uint16("y", rec.Y).
		Uint16("w", rec.W).
		Uint16("h", rec.H).
		Uint64("ts", rec.Timestamp).
		Msg("frame decoded")
	return nil
}

// readByte reads a single byte; ok is false on a quiet timeout.
func (s *Synchronizer) readByte() (byte, bool, error) {
	n, err := s.port.Read(s.one[:])
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	return s.one[0], true, nil
}

// readFull fills p from the port, stopping early if the link goes
// quiet for a full timeout interval. Returns the byte count delivered.
func (s *Synchronizer) readFull(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := s.port.Read(p[total:])
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
		total += n
	}
	return total, nil
}
