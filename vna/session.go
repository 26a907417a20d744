package vna

import (
	"context"
	"errors"
	"fmt"

	"github.com/arloliu/go-vna/transport"
)

// Session opens a transport with opener, runs fn against a Channel over it and closes the
// transport on every exit path, panics included.
//
// A close failure is joined with the error returned by fn.
func Session(ctx context.Context, opener transport.Opener, fn func(ctx context.Context, ch *Channel) error, opts ...ChannelOption) (err error) {
	if opener == nil {
		return fmt.Errorf("%w: opener is nil", ErrDeviceUnavailable)
	}

	tr, err := opener()
	if err != nil {
		if errors.Is(err, ErrDeviceUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	defer func() {
		if cerr := tr.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("vna: close transport: %w", cerr))
		}
	}()

	ch, err := NewChannel(tr, opts...)
	if err != nil {
		return err
	}

	return fn(ctx, ch)
}

// Measure opens a transport, acquires one sweep over [startHz, stopHz] and closes the
// transport again.
func Measure(ctx context.Context, opener transport.Opener, startHz, stopHz float64, opts ...ChannelOption) (*NetworkRecord, error) {
	if err := validateSweepRange(startHz, stopHz); err != nil {
		return nil, err
	}

	var rec *NetworkRecord
	err := Session(ctx, opener, func(ctx context.Context, ch *Channel) error {
		var err error
		rec, err = Acquire(ctx, ch, startHz, stopHz)

		return err
	}, opts...)
	if err != nil {
		return nil, err
	}

	return rec, nil
}
