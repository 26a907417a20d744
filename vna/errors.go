package vna

import (
	"errors"
	"fmt"

	"github.com/arloliu/go-vna/transport"
)

// Sentinel errors.
var (
	// ErrDeviceUnavailable indicates the transport could not be opened.
	ErrDeviceUnavailable = transport.ErrDeviceUnavailable

	// Channel errors.
	ErrTransportClosed = errors.New("vna: transport closed")
	ErrProtocolTimeout = errors.New("vna: timeout waiting for prompt")
	ErrDecode          = errors.New("vna: decode error")
	ErrInvalidCommand  = errors.New("vna: invalid command")

	// Acquisition errors.
	ErrInconsistentSweepData = errors.New("vna: inconsistent sweep data")
	ErrInvalidSweepRange     = errors.New("vna: invalid sweep range")
)

// CommandError reports a failed command exchange.
//
// Line is the index within the command's response at which the failure occurred,
// or -1 when the failure is not tied to a response line.
type CommandError struct {
	Command string
	Line    int
	Err     error
}

func (e *CommandError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("%v (command %q)", e.Err, e.Command)
	}

	return fmt.Sprintf("%v (command %q, line %d)", e.Err, e.Command, e.Line)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func commandErr(command string, line int, err error) *CommandError {
	return &CommandError{Command: command, Line: line, Err: err}
}

// mapTransportErr translates transport failures into the channel's error taxonomy.
func mapTransportErr(err error) error {
	switch {
	case errors.Is(err, transport.ErrTimeout):
		return fmt.Errorf("%w: %w", ErrProtocolTimeout, err)
	case errors.Is(err, transport.ErrClosed):
		return fmt.Errorf("%w: %w", ErrTransportClosed, err)
	case errors.Is(err, transport.ErrInvalidText), errors.Is(err, transport.ErrLineTooLong):
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return err
}
