package transport

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/go-vna/logger"
)

// Default settings. The NanoVNA is a USB CDC device, so the baud rate is nominal.
const (
	DefaultBaudRate      = 115200
	DefaultReadTimeout   = 1 * time.Second
	DefaultWriteTimeout  = 3 * time.Second
	DefaultDialTimeout   = 3 * time.Second
	DefaultMaxLineLength = 4096
)

// Range limits.
const (
	MinReadTimeout = 10 * time.Millisecond
	MaxReadTimeout = 60 * time.Second

	MinMaxLineLength = 16
	MaxMaxLineLength = 1 << 20
)

// Mode selects how the device identifier is interpreted.
type Mode int

const (
	// ModeSerial opens the identifier as a serial port name.
	ModeSerial Mode = iota
	// ModeTCP dials the identifier as a "host:port" TCP address.
	ModeTCP
)

func (m Mode) String() string {
	switch m {
	case ModeSerial:
		return "serial"
	case ModeTCP:
		return "tcp"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Config holds the settings used to open a Transport.
type Config struct {
	identifier string
	mode       Mode

	baudRate int

	readTimeout  time.Duration
	writeTimeout time.Duration
	dialTimeout  time.Duration

	maxLineLength int

	logger logger.Logger
}

// NewConfig creates a transport configuration.
//
// identifier is a serial port name (e.g. "/dev/ttyACM0", "COM3") or, with WithTCP,
// a "host:port" address. opts are functional options applied in order.
func NewConfig(identifier string, opts ...Option) (*Config, error) {
	cfg := &Config{
		mode:          ModeSerial,
		baudRate:      DefaultBaudRate,
		readTimeout:   DefaultReadTimeout,
		writeTimeout:  DefaultWriteTimeout,
		dialTimeout:   DefaultDialTimeout,
		maxLineLength: DefaultMaxLineLength,
		logger:        logger.GetLogger(),
	}

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, errors.New("transport: device identifier is empty")
	}
	cfg.identifier = identifier

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.mode == ModeTCP {
		if err := validateAddr(cfg.identifier); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func validateAddr(addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("transport: invalid address %q: %w", addr, err)
	}
	if host == "" {
		return fmt.Errorf("transport: invalid address %q: missing host", addr)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("transport: port %q out of range [1, 65535]", portStr)
	}

	return nil
}

// --- Getters ---

// Identifier returns the port name or TCP address.
func (cfg *Config) Identifier() string { return cfg.identifier }

// Mode returns the transport mode.
func (cfg *Config) Mode() Mode { return cfg.mode }

// BaudRate returns the serial baud rate.
func (cfg *Config) BaudRate() int { return cfg.baudRate }

// ReadTimeout returns the per-line read timeout.
func (cfg *Config) ReadTimeout() time.Duration { return cfg.readTimeout }

// WriteTimeout returns the write timeout (TCP only).
func (cfg *Config) WriteTimeout() time.Duration { return cfg.writeTimeout }

// DialTimeout returns the TCP dial timeout.
func (cfg *Config) DialTimeout() time.Duration { return cfg.dialTimeout }

// MaxLineLength returns the maximum accepted line length in bytes.
func (cfg *Config) MaxLineLength() int { return cfg.maxLineLength }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// --- Option ---

// Option is a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithSerial opens the identifier as a serial port. This is the default.
func WithSerial() Option {
	return optFunc(func(cfg *Config) error {
		cfg.mode = ModeSerial
		return nil
	})
}

// WithTCP dials the identifier as a TCP address, e.g. a ser2net bridge.
func WithTCP() Option {
	return optFunc(func(cfg *Config) error {
		cfg.mode = ModeTCP
		return nil
	})
}

// WithBaudRate sets the serial baud rate.
func WithBaudRate(rate int) Option {
	return optFunc(func(cfg *Config) error {
		if rate <= 0 {
			return fmt.Errorf("transport: baud rate %d must be positive", rate)
		}
		cfg.baudRate = rate

		return nil
	})
}

// WithReadTimeout sets the maximum time ReadLine waits for data.
func WithReadTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < MinReadTimeout || d > MaxReadTimeout {
			return fmt.Errorf("transport: read timeout %v out of range [%v, %v]", d, MinReadTimeout, MaxReadTimeout)
		}
		cfg.readTimeout = d

		return nil
	})
}

// WithWriteTimeout sets the write deadline used on TCP transports.
func WithWriteTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("transport: write timeout must be positive")
		}
		cfg.writeTimeout = d

		return nil
	})
}

// WithDialTimeout sets the TCP dial timeout.
func WithDialTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("transport: dial timeout must be positive")
		}
		cfg.dialTimeout = d

		return nil
	})
}

// WithMaxLineLength bounds the size of a single line.
func WithMaxLineLength(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < MinMaxLineLength || n > MaxMaxLineLength {
			return fmt.Errorf("transport: max line length %d out of range [%d, %d]", n, MinMaxLineLength, MaxMaxLineLength)
		}
		cfg.maxLineLength = n

		return nil
	})
}

// WithLogger sets the logger for the transport.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("transport: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
