// Package serialport adapts a physical serial device to the framing
// transport contract.
package serialport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Port wraps an open serial device. Read honors the configured read
// timeout: it returns whatever arrived, or (0, nil) after a quiet
// interval, and a non-nil error only when the device itself fails.
type Port struct {
	inner serial.Port
}

// Open opens and configures the device. readTimeout bounds every Read;
// it must be positive or the decode loop could block indefinitely on
// shutdown.
func Open(device string, baud int, readTimeout time.Duration) (*Port, error) {
	if readTimeout <= 0 {
		return nil, fmt.Errorf("serialport: read timeout must be positive, got %v", readTimeout)
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", device, err)
	}
	if err := p.SetReadTimeout(readTimeout); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("serialport: set read timeout: %w", err)
	}
	return &Port{inner: p}, nil
}

func (p *Port) Read(b []byte) (int, error) {
	return p.inner.Read(b)
}

func (p *Port) Close() error {
	return p.inner.Close()
}
