package transport

import (
	"io"
	"net"
	"sync"
	"testing"
	"time"
)

// newTestConfig creates a Config with a short read timeout suitable for tests.
func newTestConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()

	defaults := []Option{
		WithReadTimeout(100 * time.Millisecond),
	}

	cfg, err := NewConfig("test-device", append(defaults, opts...)...)
	if err != nil {
		t.Fatalf("newTestConfig: %v", err)
	}

	return cfg
}

// newPipeTransport creates a lineTransport backed by the local end of net.Pipe().
// Returns the transport and the remote end acting as the instrument.
func newPipeTransport(t *testing.T, cfg *Config) (*lineTransport, net.Conn) {
	t.Helper()

	local, remote := net.Pipe()
	t.Cleanup(func() {
		_ = local.Close()
		_ = remote.Close()
	})

	return newLineTransport(local, cfg, false), remote
}

// mustWrite writes data to w, failing the test on error.
func mustWrite(t *testing.T, w io.Writer, data string) {
	t.Helper()

	if _, err := w.Write([]byte(data)); err != nil {
		t.Errorf("mustWrite: %v", err)
	}
}

// readExactly reads exactly n bytes from r, failing the test on error.
func readExactly(t *testing.T, r io.Reader, n int) []byte {
	t.Helper()

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		t.Errorf("readExactly: %v", err)
	}

	return buf
}

// chunkPort replays a fixed sequence of Read results, then reports io.EOF forever.
// It imitates a serial driver returning empty reads between bursts of data.
type chunkPort struct {
	mu     sync.Mutex
	chunks []string
	closed bool
}

func (p *chunkPort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, io.ErrClosedPipe
	}
	if len(p.chunks) == 0 {
		time.Sleep(5 * time.Millisecond)
		return 0, io.EOF
	}
	c := p.chunks[0]
	p.chunks = p.chunks[1:]
	if c == "" {
		return 0, io.EOF
	}

	return copy(b, c), nil
}

func (p *chunkPort) Write(b []byte) (int, error) { return len(b), nil }

func (p *chunkPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true

	return nil
}
