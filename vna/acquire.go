package vna

import (
	"context"
	"fmt"
	"math"
)

// Instrument commands.
const (
	CmdSweepStart  = "sweep start"
	CmdSweepStop   = "sweep stop"
	CmdFrequencies = "frequencies"
	CmdDataS11     = "data 0"
	CmdDataS21     = "data 1"
)

// Acquire sets the sweep range to [startHz, stopHz] and reads one full sweep.
//
// Commands are issued strictly in order: sweep start, sweep stop, frequencies, data 0,
// data 1. The instrument chooses the number of points. Nothing is retried; the first
// failure is returned with a nil record.
func Acquire(ctx context.Context, ch CommandChannel, startHz, stopHz float64) (*NetworkRecord, error) {
	if err := validateSweepRange(startHz, stopHz); err != nil {
		return nil, err
	}

	if _, err := ch.SendCommand(ctx, CmdSweepStart+" "+FormatHz(startHz)); err != nil {
		return nil, err
	}
	if _, err := ch.SendCommand(ctx, CmdSweepStop+" "+FormatHz(stopHz)); err != nil {
		return nil, err
	}

	return AcquireData(ctx, ch)
}

// AcquireData reads the sweep currently configured on the instrument.
func AcquireData(ctx context.Context, ch CommandChannel) (*NetworkRecord, error) {
	freqs, err := readFrequencies(ctx, ch)
	if err != nil {
		return nil, err
	}
	s11, err := readComplexSeries(ctx, ch, CmdDataS11)
	if err != nil {
		return nil, err
	}
	s21, err := readComplexSeries(ctx, ch, CmdDataS21)
	if err != nil {
		return nil, err
	}

	return NewNetworkRecord(freqs, s11, s21)
}

func validateSweepRange(startHz, stopHz float64) error {
	if math.IsNaN(startHz) || math.IsInf(startHz, 0) || math.IsNaN(stopHz) || math.IsInf(stopHz, 0) {
		return fmt.Errorf("%w: [%v, %v] is not finite", ErrInvalidSweepRange, startHz, stopHz)
	}
	if startHz < 0 || startHz >= stopHz {
		return fmt.Errorf("%w: want 0 <= start < stop, got [%v, %v]", ErrInvalidSweepRange, startHz, stopHz)
	}

	return nil
}

func readFrequencies(ctx context.Context, ch CommandChannel) ([]float64, error) {
	lines, err := ch.SendCommand(ctx, CmdFrequencies)
	if err != nil {
		return nil, err
	}

	freqs := make([]float64, len(lines))
	for i, line := range lines {
		v, err := ParseFloat(line)
		if err != nil {
			return nil, commandErr(CmdFrequencies, i, err)
		}
		freqs[i] = v
	}

	return freqs, nil
}

func readComplexSeries(ctx context.Context, ch CommandChannel, command string) ([]complex128, error) {
	lines, err := ch.SendCommand(ctx, command)
	if err != nil {
		return nil, err
	}

	series := make([]complex128, len(lines))
	for i, line := range lines {
		v, err := ParseComplex(line)
		if err != nil {
			return nil, commandErr(command, i, err)
		}
		series[i] = v
	}

	return series, nil
}
