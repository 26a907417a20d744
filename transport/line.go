package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/arloliu/go-vna/logger"
)

const readChunkSize = 512

// readDeadliner is implemented by ports that support read deadlines, such as net.Conn.
type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// lineTransport turns a byte stream into a line oriented Transport.
//
// Ports with read deadlines (TCP) get one deadline per read call. Ports without them (serial)
// must return from Read periodically with no data, which the serial driver does through its
// inter-character timeout; in that case io.EOF means "no data yet" when eofIsIdle is set.
//
// This type is NOT goroutine-safe for ReadLine and Write.
type lineTransport struct {
	port      io.ReadWriteCloser
	cfg       *Config
	logger    logger.Logger
	eofIsIdle bool

	pending []byte
	chunk   []byte
	open    atomic.Bool
}

func newLineTransport(port io.ReadWriteCloser, cfg *Config, eofIsIdle bool) *lineTransport {
	lt := &lineTransport{
		port:      port,
		cfg:       cfg,
		logger:    cfg.logger.With("device", cfg.identifier),
		eofIsIdle: eofIsIdle,
		chunk:     make([]byte, readChunkSize),
	}
	lt.open.Store(true)

	return lt
}

var _ Transport = (*lineTransport)(nil)

// ReadLine implements Transport.
func (lt *lineTransport) ReadLine() (string, error) {
	if !lt.open.Load() {
		return "", ErrClosed
	}

	deadline := time.Now().Add(lt.cfg.readTimeout)
	for {
		if idx := bytes.IndexByte(lt.pending, '\n'); idx >= 0 {
			raw := lt.pending[:idx]
			line, err := decodeLine(raw)
			lt.pending = lt.pending[idx+1:]
			lt.compact()

			return line, err
		}

		if len(lt.pending) > lt.cfg.maxLineLength {
			n := len(lt.pending)
			lt.pending = lt.pending[:0]

			return "", fmt.Errorf("%w: %d bytes without terminator", ErrLineTooLong, n)
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			if len(lt.pending) > 0 {
				line, err := decodeLine(lt.pending)
				lt.pending = lt.pending[:0]
				if err != nil {
					return "", err
				}

				return "", &PartialLineError{Line: line}
			}

			return "", ErrTimeout
		}

		n, err := lt.read(remaining)
		if n > 0 {
			lt.pending = append(lt.pending, lt.chunk[:n]...)
			continue
		}
		if err != nil && !lt.isIdle(err) {
			if lt.isClosedErr(err) {
				return "", ErrClosed
			}

			return "", fmt.Errorf("transport: read %s: %w", lt.cfg.identifier, err)
		}
	}
}

// read performs one Read call bounded by remaining when the port supports deadlines.
func (lt *lineTransport) read(remaining time.Duration) (int, error) {
	if d, ok := lt.port.(readDeadliner); ok {
		if err := d.SetReadDeadline(time.Now().Add(remaining)); err != nil {
			return 0, err
		}
	}

	return lt.port.Read(lt.chunk)
}

// compact drops the consumed prefix once it dominates the buffer.
func (lt *lineTransport) compact() {
	if cap(lt.pending) > 4*len(lt.pending)+readChunkSize {
		lt.pending = append(make([]byte, 0, len(lt.pending)+readChunkSize), lt.pending...)
	}
}

func (lt *lineTransport) isIdle(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return lt.eofIsIdle && errors.Is(err, io.EOF)
}

func (lt *lineTransport) isClosedErr(err error) bool {
	return !lt.open.Load() ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, os.ErrClosed)
}

// Write implements Transport.
func (lt *lineTransport) Write(p []byte) error {
	if !lt.open.Load() {
		return ErrClosed
	}

	if d, ok := lt.port.(writeDeadliner); ok {
		if err := d.SetWriteDeadline(time.Now().Add(lt.cfg.writeTimeout)); err != nil {
			return fmt.Errorf("transport: set write deadline: %w", err)
		}
	}

	for written := 0; written < len(p); {
		n, err := lt.port.Write(p[written:])
		written += n

		if err != nil {
			if lt.isClosedErr(err) {
				return ErrClosed
			}

			return fmt.Errorf("transport: write %s: %w", lt.cfg.identifier, err)
		}
	}

	return nil
}

// Close implements Transport.
func (lt *lineTransport) Close() error {
	if !lt.open.CompareAndSwap(true, false) {
		return nil
	}

	lt.logger.Info("transport: closing")

	if err := lt.port.Close(); err != nil {
		return fmt.Errorf("transport: close %s: %w", lt.cfg.identifier, err)
	}

	return nil
}

// IsOpen implements Transport.
func (lt *lineTransport) IsOpen() bool {
	return lt.open.Load()
}

// decodeLine strips a trailing carriage return and validates the bytes as UTF-8 text.
func decodeLine(raw []byte) (string, error) {
	raw = bytes.TrimSuffix(raw, []byte{'\r'})
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidText, raw)
	}

	return string(raw), nil
}
