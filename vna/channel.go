package vna

import (
	"context"
	"errors"
	"strings"

	"github.com/arloliu/go-vna/logger"
	"github.com/arloliu/go-vna/transport"
)

// DefaultPrompt is the line the instrument prints when it is ready for the next command.
const DefaultPrompt = "ch>"

// CommandChannel sends one command at a time and returns the instrument's response lines.
type CommandChannel interface {
	// SendCommand writes command and collects the response lines that precede the prompt.
	// The prompt itself is not returned. On failure the returned slice is nil.
	SendCommand(ctx context.Context, command string) ([]string, error)
	// Close closes the underlying transport.
	Close() error
}

// Channel is a CommandChannel over a transport.Transport.
//
// Channel is safe for concurrent use; commands are serialized so a new command is never
// written before the previous response has been read up to the prompt. A caller waiting for
// its turn gives up as soon as its context is done.
type Channel struct {
	tr     transport.Transport
	cfg    *ChannelConfig
	sem    chan struct{}
	metric *ChannelMetrics
}

var _ CommandChannel = (*Channel)(nil)

// NewChannel creates a channel over tr.
func NewChannel(tr transport.Transport, opts ...ChannelOption) (*Channel, error) {
	if tr == nil {
		return nil, errors.New("vna: transport is nil")
	}

	cfg, err := newChannelConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Channel{
		tr:     tr,
		cfg:    cfg,
		sem:    make(chan struct{}, 1),
		metric: newChannelMetrics(),
	}, nil
}

// GetMetrics returns the channel metrics.
func (c *Channel) GetMetrics() *ChannelMetrics {
	return c.metric
}

// Transport returns the underlying transport.
func (c *Channel) Transport() transport.Transport {
	return c.tr
}

// SendCommand implements CommandChannel.
//
// Response lines are trimmed of surrounding whitespace and empty lines are dropped.
// Every failure is a *CommandError wrapping one of ErrInvalidCommand, ErrTransportClosed,
// ErrProtocolTimeout, ErrDecode or the context error.
func (c *Channel) SendCommand(ctx context.Context, command string) ([]string, error) {
	if command == "" || strings.ContainsAny(command, "\r\n") {
		c.metric.incErrCount()
		return nil, commandErr(command, -1, ErrInvalidCommand)
	}

	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		c.metric.incErrCount()
		return nil, commandErr(command, -1, ctx.Err())
	}
	defer func() { <-c.sem }()

	if err := ctx.Err(); err != nil {
		c.metric.incErrCount()
		return nil, commandErr(command, -1, err)
	}

	if !c.tr.IsOpen() {
		c.metric.incErrCount()
		return nil, commandErr(command, -1, ErrTransportClosed)
	}

	c.cfg.logger.Debug("vna: send command", "command", command)

	if err := c.tr.Write([]byte(command + "\n")); err != nil {
		c.metric.incErrCount()
		return nil, commandErr(command, -1, mapTransportErr(err))
	}
	c.metric.incCommandCount(command)

	lines, err := c.readResponse(ctx, command)
	if err != nil {
		c.metric.incErrCount()
		c.cfg.logger.Debug("vna: command failed", "command", command, "error", err)

		return nil, err
	}

	c.cfg.logger.Debug("vna: command done", "command", command, "lines", len(lines))

	return lines, nil
}

func (c *Channel) readResponse(ctx context.Context, command string) ([]string, error) {
	lines := []string{}
	first := true

	for {
		if err := ctx.Err(); err != nil {
			return nil, commandErr(command, len(lines), err)
		}

		raw, err := c.tr.ReadLine()
		if err != nil {
			var partial *transport.PartialLineError
			if errors.As(err, &partial) && strings.TrimSpace(partial.Line) == c.cfg.prompt {
				c.metric.incLineRecvCount()
				return lines, nil
			}

			switch {
			case errors.Is(err, transport.ErrTimeout):
				c.metric.incTimeoutCount()
			case errors.Is(err, transport.ErrInvalidText), errors.Is(err, transport.ErrLineTooLong):
				c.metric.incDecodeErrCount()
			}

			return nil, commandErr(command, len(lines), mapTransportErr(err))
		}
		c.metric.incLineRecvCount()

		line := strings.TrimSpace(raw)
		if line == c.cfg.prompt {
			return lines, nil
		}
		if line == "" {
			continue
		}

		if first {
			first = false
			if c.cfg.echoSkip && line == command {
				continue
			}
		}

		lines = append(lines, line)
	}
}

// Close implements CommandChannel.
func (c *Channel) Close() error {
	return c.tr.Close()
}

// --- Config ---

// ChannelConfig holds the channel settings.
type ChannelConfig struct {
	prompt   string
	echoSkip bool
	logger   logger.Logger
}

func newChannelConfig(opts ...ChannelOption) (*ChannelConfig, error) {
	cfg := &ChannelConfig{
		prompt: DefaultPrompt,
		logger: logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Prompt returns the prompt line that terminates a response.
func (cfg *ChannelConfig) Prompt() string { return cfg.prompt }

// EchoSkip reports whether a first response line equal to the command is dropped.
func (cfg *ChannelConfig) EchoSkip() bool { return cfg.echoSkip }

// ChannelOption is a functional option for configuring a Channel.
type ChannelOption interface {
	apply(*ChannelConfig) error
}

type chOptFunc func(*ChannelConfig) error

func (f chOptFunc) apply(cfg *ChannelConfig) error { return f(cfg) }

// WithLogger sets the channel logger.
func WithLogger(l logger.Logger) ChannelOption {
	return chOptFunc(func(cfg *ChannelConfig) error {
		if l == nil {
			return errors.New("vna: logger is nil")
		}
		cfg.logger = l

		return nil
	})
}

// WithEchoSkip drops a first response line equal to the command. NanoVNA firmware echoes
// every command it receives.
func WithEchoSkip(enabled bool) ChannelOption {
	return chOptFunc(func(cfg *ChannelConfig) error {
		cfg.echoSkip = enabled
		return nil
	})
}

// WithPrompt sets the prompt line, compared after trimming surrounding whitespace.
func WithPrompt(prompt string) ChannelOption {
	return chOptFunc(func(cfg *ChannelConfig) error {
		prompt = strings.TrimSpace(prompt)
		if prompt == "" {
			return errors.New("vna: prompt is empty")
		}
		cfg.prompt = prompt

		return nil
	})
}
