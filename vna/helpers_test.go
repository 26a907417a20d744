package vna

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/arloliu/go-vna/logger"
	"github.com/arloliu/go-vna/transport"
)

const testReadTimeout = 50 * time.Millisecond

// newTestChannel creates a Channel over a MemTransport answered by respond.
func newTestChannel(t *testing.T, respond transport.Responder, opts ...ChannelOption) (*Channel, *transport.MemTransport) {
	t.Helper()

	tr := transport.NewMemTransport(testReadTimeout, respond)
	t.Cleanup(func() { _ = tr.Close() })

	defaults := []ChannelOption{
		WithLogger(logger.NewMockLogger().AllowAll()),
	}
	ch, err := NewChannel(tr, append(defaults, opts...)...)
	if err != nil {
		t.Fatalf("newTestChannel: %v", err)
	}

	return ch, tr
}

// scripted answers each command from a fixed table. Unknown commands get no response at all,
// so the channel times out waiting for the prompt.
func scripted(responses map[string][]string) transport.Responder {
	return func(command string) []string {
		lines, ok := responses[command]
		if !ok {
			return nil
		}

		return append(append([]string{}, lines...), DefaultPrompt)
	}
}

// mockChannel is a testify mock implementing CommandChannel.
type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) SendCommand(ctx context.Context, command string) ([]string, error) {
	args := m.Called(ctx, command)
	lines, _ := args.Get(0).([]string)

	return lines, args.Error(1)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

// closeFailTransport reports an error from Close after closing the wrapped transport.
type closeFailTransport struct {
	*transport.MemTransport
}

var errCloseFailed = errors.New("close failed")

func (c closeFailTransport) Close() error {
	_ = c.MemTransport.Close()
	return errCloseFailed
}
