package tdr

import "errors"

var (
	ErrInsufficientSamples     = errors.New("tdr: at least 4 samples are required")
	ErrNonMonotonicFrequencies = errors.New("tdr: frequencies are not strictly increasing")
	ErrInvalidOption           = errors.New("tdr: invalid option")
)
