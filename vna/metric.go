package vna

import (
	"strings"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// ChannelMetrics contains atomic metrics for a command channel.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type ChannelMetrics struct {
	// CommandCount indicates the number of commands written.
	CommandCount atomic.Uint64
	// LineRecvCount indicates the number of lines read, prompt lines included.
	LineRecvCount atomic.Uint64
	// TimeoutCount indicates the number of commands that timed out waiting for the prompt.
	TimeoutCount atomic.Uint64
	// DecodeErrCount indicates the number of response lines that could not be decoded as text.
	DecodeErrCount atomic.Uint64
	// ErrCount indicates the number of failed commands of any kind.
	ErrCount atomic.Uint64

	verbCounts *xsync.MapOf[string, *atomic.Uint64]
}

func newChannelMetrics() *ChannelMetrics {
	return &ChannelMetrics{
		verbCounts: xsync.NewMapOf[string, *atomic.Uint64](),
	}
}

// VerbCount returns the number of commands written whose first word is verb.
func (m *ChannelMetrics) VerbCount(verb string) uint64 {
	if c, ok := m.verbCounts.Load(verb); ok {
		return c.Load()
	}

	return 0
}

// VerbCounts returns a snapshot of the per-verb command counters.
func (m *ChannelMetrics) VerbCounts() map[string]uint64 {
	out := make(map[string]uint64, m.verbCounts.Size())
	m.verbCounts.Range(func(verb string, c *atomic.Uint64) bool {
		out[verb] = c.Load()
		return true
	})

	return out
}

func (m *ChannelMetrics) incCommandCount(command string) {
	m.CommandCount.Add(1)

	verb, _, _ := strings.Cut(command, " ")
	c, _ := m.verbCounts.LoadOrCompute(verb, func() *atomic.Uint64 {
		return &atomic.Uint64{}
	})
	c.Add(1)
}

func (m *ChannelMetrics) incLineRecvCount() {
	m.LineRecvCount.Add(1)
}

func (m *ChannelMetrics) incTimeoutCount() {
	m.TimeoutCount.Add(1)
}

func (m *ChannelMetrics) incDecodeErrCount() {
	m.DecodeErrCount.Add(1)
}

func (m *ChannelMetrics) incErrCount() {
	m.ErrCount.Add(1)
}
