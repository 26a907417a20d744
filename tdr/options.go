package tdr

import (
	"fmt"
	"math"

	"github.com/arloliu/go-vna/vna"
)

// Defaults.
const (
	DefaultGridSize   = 2048
	DefaultWindowBeta = 5.0

	// MinGridSize is the smallest grid that still spans [fmin, fmax].
	MinGridSize = 2
)

type config struct {
	gridSize int
	beta     float64
	param    vna.SParam
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		gridSize: DefaultGridSize,
		beta:     DefaultWindowBeta,
		param:    vna.S11,
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Option is a functional option for StepResponse.
type Option interface {
	apply(*config) error
}

type optFunc func(*config) error

func (f optFunc) apply(cfg *config) error { return f(cfg) }

// WithGridSize sets the number of uniform frequency points, which is also the number of
// output samples. It must be at least MinGridSize.
func WithGridSize(n int) Option {
	return optFunc(func(cfg *config) error {
		if n < MinGridSize {
			return fmt.Errorf("%w: grid size %d is less than %d", ErrInvalidOption, n, MinGridSize)
		}
		cfg.gridSize = n

		return nil
	})
}

// WithWindowBeta sets the Kaiser window shape. Zero gives a rectangular window.
func WithWindowBeta(beta float64) Option {
	return optFunc(func(cfg *config) error {
		if math.IsNaN(beta) || math.IsInf(beta, 0) || beta < 0 {
			return fmt.Errorf("%w: window beta %v must be finite and non-negative", ErrInvalidOption, beta)
		}
		cfg.beta = beta

		return nil
	})
}

// WithParameter selects the S-parameter to transform. The default is vna.S11.
func WithParameter(p vna.SParam) Option {
	return optFunc(func(cfg *config) error {
		if p != vna.S11 && p != vna.S21 {
			return fmt.Errorf("%w: unknown S-parameter %v", ErrInvalidOption, p)
		}
		cfg.param = p

		return nil
	})
}
