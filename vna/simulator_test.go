package vna

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulator_Respond(t *testing.T) {
	sim := NewSimulator(5, func(f float64) complex128 { return complex(f/1e9, -0.5) }, nil)

	assert.Equal(t, []string{"ch> "}, sim.Respond("sweep start 100000000"))
	assert.Equal(t, []string{"ch> "}, sim.Respond("sweep stop 500000000"))
	assert.Equal(t, []string{"100000000 500000000 5", "ch> "}, sim.Respond("sweep"))

	assert.Equal(t, []string{"100000000", "200000000", "300000000", "400000000", "500000000", "ch> "},
		sim.Respond("frequencies"))
	assert.Equal(t, []string{"0.1,-0.5", "0.2,-0.5", "0.3,-0.5", "0.4,-0.5", "0.5,-0.5", "ch> "},
		sim.Respond("data 0"))
	assert.Equal(t, []string{"0,0", "0,0", "0,0", "0,0", "0,0", "ch> "}, sim.Respond("data 1"))
}

func TestSimulator_Errors(t *testing.T) {
	sim := NewSimulator(0, nil, nil)

	assert.Len(t, sim.Frequencies(), DefaultSimPoints)
	assert.Equal(t, []string{"ch> "}, sim.Respond(""))
	assert.Equal(t, []string{"bogus?", "ch> "}, sim.Respond("bogus 1 2"))
	assert.Equal(t, []string{"usage: data [array]", "ch> "}, sim.Respond("data 7"))
	assert.Equal(t, []string{"usage: data [array]", "ch> "}, sim.Respond("data"))

	usage := "usage: sweep {start(Hz)} [stop(Hz)] [points]"
	assert.Equal(t, []string{usage, "ch> "}, sim.Respond("sweep start"))
	assert.Equal(t, []string{usage, "ch> "}, sim.Respond("sweep start abc"))
	assert.Equal(t, []string{usage, "ch> "}, sim.Respond("sweep center 1000"))

	start, stop := sim.Range()
	assert.Equal(t, DefaultSimStartHz, start)
	assert.Equal(t, DefaultSimStopHz, stop)
}

func TestSimulator_Echo(t *testing.T) {
	sim := NewSimulator(1, nil, nil)
	sim.SetEcho(true)

	assert.Equal(t, []string{"frequencies", "50000", "ch> "}, sim.Respond("frequencies"))
}

func TestCableModel(t *testing.T) {
	model := CableModel(complex(-0.8, 0), 10, 0.66)

	assert.Equal(t, complex(-0.8, 0), model(0))
	for _, f := range []float64{1e6, 13e6, 250e6} {
		assert.InDelta(t, 0.8, cmplx.Abs(model(f)), 1e-12)
	}

	// Half a wavelength of round trip flips the sign.
	delay := 2 * 10 / (0.66 * SpeedOfLight)
	v := model(1 / (2 * delay))
	assert.InDelta(t, 0.8, real(v), 1e-9)
	assert.InDelta(t, 0, imag(v), 1e-9)
	assert.False(t, math.IsNaN(real(model(1e9))))
}
