package vna

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcquire(t *testing.T) {
	s11 := CableModel(complex(0.5, 0), 2, 0.66)
	s21 := func(f float64) complex128 { return complex(1-f/1e9, 0) }
	sim := NewSimulator(101, s11, s21)
	ch, tr := newTestChannel(t, sim.Respond)

	rec, err := Acquire(context.Background(), ch, 1e6, 10e6)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sweep start 1000000",
		"sweep stop 10000000",
		"frequencies",
		"data 0",
		"data 1",
	}, tr.Commands())

	require.Equal(t, 101, rec.Len())
	assert.Equal(t, 1e6, rec.StartHz())
	assert.Equal(t, 10e6, rec.StopHz())
	for i, p := range rec.Points() {
		assert.Equal(t, s11(p.Frequency), p.S11, "S11 at point %d", i)
		assert.Equal(t, s21(p.Frequency), p.S21, "S21 at point %d", i)
	}
}

func TestAcquireData(t *testing.T) {
	ch, tr := newTestChannel(t, scripted(map[string][]string{
		"frequencies": {"1000000", "2000000", "3000000"},
		"data 0":      {"0.1,0.2", "0.3,0.4", "0.5,0.6"},
		"data 1":      {"1,0", "0,1", "-1,0"},
	}))

	rec, err := AcquireData(context.Background(), ch)
	require.NoError(t, err)

	assert.Equal(t, []string{"frequencies", "data 0", "data 1"}, tr.Commands())
	assert.Equal(t, []float64{1e6, 2e6, 3e6}, rec.Frequencies())
	assert.Equal(t, []complex128{complex(0.1, 0.2), complex(0.3, 0.4), complex(0.5, 0.6)}, rec.S11())
	assert.Equal(t, []complex128{1, complex(0, 1), -1}, rec.S21())
}

func TestAcquire_Inconsistent(t *testing.T) {
	ch, _ := newTestChannel(t, scripted(map[string][]string{
		"sweep start 0":  {},
		"sweep stop 300": {},
		"frequencies":    {"100", "200", "300"},
		"data 0":         {"0,0", "0,0", "0,0"},
		"data 1":         {"0,0", "0,0"},
	}))

	rec, err := Acquire(context.Background(), ch, 0, 300)
	require.ErrorIs(t, err, ErrInconsistentSweepData)
	assert.Nil(t, rec)
}

func TestAcquire_DecodeError(t *testing.T) {
	ch, tr := newTestChannel(t, scripted(map[string][]string{
		"frequencies": {"100", "200", "300"},
		"data 0":      {"0,0", "0,0", "0;0"},
		"data 1":      {"0,0", "0,0", "0,0"},
	}))

	rec, err := AcquireData(context.Background(), ch)
	require.ErrorIs(t, err, ErrDecode)
	assert.Nil(t, rec)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, CmdDataS11, cmdErr.Command)
	assert.Equal(t, 2, cmdErr.Line)

	// data 1 is never requested once data 0 failed.
	assert.Equal(t, []string{"frequencies", "data 0"}, tr.Commands())
}

func TestAcquire_BadFrequency(t *testing.T) {
	ch, _ := newTestChannel(t, scripted(map[string][]string{
		"frequencies": {"100", "2e2", "three hundred"},
	}))

	_, err := AcquireData(context.Background(), ch)
	require.ErrorIs(t, err, ErrDecode)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, CmdFrequencies, cmdErr.Command)
	assert.Equal(t, 2, cmdErr.Line)
}

func TestAcquire_Timeout(t *testing.T) {
	// No entry for "data 1": the instrument never prints the prompt.
	ch, _ := newTestChannel(t, scripted(map[string][]string{
		"frequencies": {"100"},
		"data 0":      {"0,0"},
	}))

	rec, err := AcquireData(context.Background(), ch)
	require.ErrorIs(t, err, ErrProtocolTimeout)
	assert.Nil(t, rec)
}

func TestAcquire_InvalidRange(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
	}{
		{"negative start", -1, 100},
		{"equal", 100, 100},
		{"reversed", 200, 100},
		{"NaN start", math.NaN(), 100},
		{"infinite stop", 0, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := &mockChannel{}

			rec, err := Acquire(context.Background(), ch, tt.start, tt.stop)
			require.ErrorIs(t, err, ErrInvalidSweepRange)
			assert.Nil(t, rec)
			ch.AssertNotCalled(t, "SendCommand", mock.Anything, mock.Anything)
		})
	}
}

func TestAcquire_StopsAtFirstFailure(t *testing.T) {
	ch := &mockChannel{}
	ch.On("SendCommand", mock.Anything, "sweep start 50000").Return([]string{}, nil).Once()
	ch.On("SendCommand", mock.Anything, "sweep stop 900000000").
		Return(nil, commandErr("sweep stop 900000000", 0, ErrProtocolTimeout)).Once()

	rec, err := Acquire(context.Background(), ch, 50e3, 900e6)
	require.ErrorIs(t, err, ErrProtocolTimeout)
	assert.Nil(t, rec)

	ch.AssertExpectations(t)
	ch.AssertNumberOfCalls(t, "SendCommand", 2)
}
