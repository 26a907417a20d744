package transport

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by transports.
var (
	ErrDeviceUnavailable = errors.New("transport: device unavailable")
	ErrTimeout           = errors.New("transport: read timeout")
	ErrClosed            = errors.New("transport: closed")
	ErrInvalidText       = errors.New("transport: line is not valid UTF-8 text")
	ErrLineTooLong       = errors.New("transport: line exceeds maximum length")
)

// PartialLineError reports a read timeout that expired while an unterminated line was pending.
// Line holds the pending text with a trailing '\r' stripped. It matches ErrTimeout with errors.Is.
type PartialLineError struct {
	Line string
}

func (e *PartialLineError) Error() string {
	return fmt.Sprintf("%v with partial line %q pending", ErrTimeout, e.Line)
}

func (e *PartialLineError) Unwrap() error {
	return ErrTimeout
}

// Transport is a newline-delimited byte channel to an instrument.
type Transport interface {
	// ReadLine returns the next line without its terminator. It blocks at most for the
	// transport's read timeout and fails with ErrTimeout if no complete line arrives; an
	// unterminated fragment is reported through a *PartialLineError.
	ReadLine() (string, error)
	// Write writes p in full.
	Write(p []byte) error
	// Close releases the underlying device. Closing twice is a no-op.
	Close() error
	// IsOpen reports whether the transport can still be used.
	IsOpen() bool
}

// Opener acquires a Transport.
type Opener func() (Transport, error)

// Open opens the device described by cfg.
//
// Failures are reported as ErrDeviceUnavailable wrapping the cause.
func Open(cfg *Config) (Transport, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrDeviceUnavailable)
	}

	var (
		tr  Transport
		err error
	)
	switch cfg.mode {
	case ModeTCP:
		tr, err = dialTCP(cfg)
	default:
		tr, err = openSerial(cfg)
	}
	if err != nil {
		cfg.logger.Error("transport: open failed", "device", cfg.identifier, "mode", cfg.mode, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrDeviceUnavailable, cfg.identifier, err)
	}

	cfg.logger.Info("transport: opened", "device", cfg.identifier, "mode", cfg.mode)

	return tr, nil
}

// Opener returns an Opener that opens the device described by cfg.
func (cfg *Config) Opener() Opener {
	return func() (Transport, error) {
		return Open(cfg)
	}
}
