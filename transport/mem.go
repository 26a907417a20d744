package transport

import (
	"bytes"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/go-vna/internal/pool"
	"github.com/arloliu/go-vna/internal/queue"
)

// Responder produces the lines an instrument prints in answer to one command.
// The command is passed without its line terminator.
type Responder func(command string) []string

// MemTransport is an in-memory Transport. Every complete line written to it is handed to a
// Responder and the returned lines become readable through ReadLine.
//
// When no line is pending, ReadLine waits for the read timeout and fails with ErrTimeout,
// the way a silent device behaves.
type MemTransport struct {
	mu          sync.Mutex
	respond     Responder
	pending     queue.Queue[string]
	partial     []byte
	commands    []string
	readTimeout time.Duration

	open       atomic.Bool
	closed     chan struct{}
	closeCount atomic.Int32
}

var _ Transport = (*MemTransport)(nil)

// NewMemTransport creates an open in-memory transport.
// A nil respond makes the transport silent.
func NewMemTransport(readTimeout time.Duration, respond Responder) *MemTransport {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	m := &MemTransport{
		respond:     respond,
		pending:     queue.NewSliceQueue[string](64),
		readTimeout: readTimeout,
		closed:      make(chan struct{}),
	}
	m.open.Store(true)

	return m
}

// Opener returns an Opener handing out this transport.
// It fails with ErrDeviceUnavailable once the transport has been closed.
func (m *MemTransport) Opener() Opener {
	return func() (Transport, error) {
		if !m.IsOpen() {
			return nil, ErrDeviceUnavailable
		}

		return m, nil
	}
}

// Feed queues unsolicited lines, as if the device printed them on its own.
func (m *MemTransport) Feed(lines ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending.Enqueue(lines...)
}

// Commands returns the complete command lines written so far.
func (m *MemTransport) Commands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.commands))
	copy(out, m.commands)

	return out
}

// CloseCount returns how many times Close has been called.
func (m *MemTransport) CloseCount() int {
	return int(m.closeCount.Load())
}

// Pending returns the number of lines queued for ReadLine.
func (m *MemTransport) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pending.Length()
}

// ReadLine implements Transport.
func (m *MemTransport) ReadLine() (string, error) {
	if !m.open.Load() {
		return "", ErrClosed
	}

	if line, ok, err := m.next(); ok {
		return line, err
	}

	if !pool.Wait(m.readTimeout, m.closed) {
		return "", ErrClosed
	}

	if line, ok, err := m.next(); ok {
		return line, err
	}

	return "", ErrTimeout
}

func (m *MemTransport) next() (string, bool, error) {
	m.mu.Lock()
	line, ok := m.pending.Dequeue()
	m.mu.Unlock()

	if !ok {
		return "", false, nil
	}
	line, err := decodeLine([]byte(line))

	return line, true, err
}

// Write implements Transport.
func (m *MemTransport) Write(p []byte) error {
	if !m.open.Load() {
		return ErrClosed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.partial = append(m.partial, p...)
	for {
		idx := bytes.IndexByte(m.partial, '\n')
		if idx < 0 {
			break
		}
		cmd := string(bytes.TrimSuffix(m.partial[:idx], []byte{'\r'}))
		m.partial = m.partial[idx+1:]

		m.commands = append(m.commands, cmd)
		if m.respond != nil {
			m.pending.Enqueue(m.respond(cmd)...)
		}
	}

	return nil
}

// Close implements Transport. Lines still pending are dropped.
func (m *MemTransport) Close() error {
	m.closeCount.Add(1)
	if m.open.CompareAndSwap(true, false) {
		close(m.closed)
	}

	m.mu.Lock()
	m.pending.Reset()
	m.partial = m.partial[:0]
	m.mu.Unlock()

	return nil
}

// IsOpen implements Transport.
func (m *MemTransport) IsOpen() bool {
	return m.open.Load()
}
