package vna

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/arloliu/go-vna/transport"
)

// SpeedOfLight is the speed of light in vacuum in m/s.
const SpeedOfLight = 299792458.0

// Simulator defaults, matching a NanoVNA-H after reset.
const (
	DefaultSimStartHz = 50e3
	DefaultSimStopHz  = 900e6
	DefaultSimPoints  = 101
)

// ResponseFunc returns an S-parameter value at frequency f in Hz.
type ResponseFunc func(f float64) complex128

// Simulator answers the instrument command set from S-parameter models.
//
// Its Respond method is a transport.Responder, so a Simulator behind a
// transport.MemTransport stands in for a real instrument.
type Simulator struct {
	mu      sync.Mutex
	startHz float64
	stopHz  float64
	points  int
	s11     ResponseFunc
	s21     ResponseFunc
	echo    bool
	prompt  string
}

// NewSimulator creates a simulator sweeping points frequencies over the default range.
// A nil model reads as zero. points below 1 selects DefaultSimPoints.
func NewSimulator(points int, s11, s21 ResponseFunc) *Simulator {
	if points < 1 {
		points = DefaultSimPoints
	}
	zero := func(float64) complex128 { return 0 }
	if s11 == nil {
		s11 = zero
	}
	if s21 == nil {
		s21 = zero
	}

	return &Simulator{
		startHz: DefaultSimStartHz,
		stopHz:  DefaultSimStopHz,
		points:  points,
		s11:     s11,
		s21:     s21,
		prompt:  DefaultPrompt,
	}
}

// SetEcho makes the simulator echo each command before its response, as NanoVNA firmware does.
func (s *Simulator) SetEcho(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.echo = enabled
}

// Range returns the configured sweep range in Hz.
func (s *Simulator) Range() (startHz, stopHz float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.startHz, s.stopHz
}

// Frequencies returns the current sweep frequencies, whole Hz from start to stop.
func (s *Simulator) Frequencies() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.frequencies()
}

func (s *Simulator) frequencies() []float64 {
	freqs := make([]float64, s.points)
	if s.points == 1 {
		freqs[0] = math.Round(s.startHz)
		return freqs
	}

	step := (s.stopHz - s.startHz) / float64(s.points-1)
	for i := range freqs {
		freqs[i] = math.Round(s.startHz + step*float64(i))
	}

	return freqs
}

// Transport returns a MemTransport driven by this simulator.
func (s *Simulator) Transport(readTimeout time.Duration) *transport.MemTransport {
	return transport.NewMemTransport(readTimeout, s.Respond)
}

// Respond implements transport.Responder. Every response ends with the prompt.
func (s *Simulator) Respond(command string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	if s.echo {
		out = append(out, command)
	}
	out = append(out, s.execute(strings.Fields(command))...)

	return append(out, s.prompt+" ")
}

func (s *Simulator) execute(args []string) []string {
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "sweep":
		return s.sweep(args[1:])
	case "frequencies":
		freqs := s.frequencies()
		out := make([]string, len(freqs))
		for i, f := range freqs {
			out[i] = FormatHz(f)
		}

		return out
	case "data":
		if len(args) != 2 {
			return []string{"usage: data [array]"}
		}
		var model ResponseFunc
		switch args[1] {
		case "0":
			model = s.s11
		case "1":
			model = s.s21
		default:
			return []string{"usage: data [array]"}
		}
		freqs := s.frequencies()
		out := make([]string, len(freqs))
		for i, f := range freqs {
			out[i] = formatComplex(model(f))
		}

		return out
	}

	return []string{args[0] + "?"}
}

func (s *Simulator) sweep(args []string) []string {
	const usage = "usage: sweep {start(Hz)} [stop(Hz)] [points]"

	if len(args) == 0 {
		return []string{FormatHz(s.startHz) + " " + FormatHz(s.stopHz) + " " + strconv.Itoa(s.points)}
	}
	if len(args) != 2 {
		return []string{usage}
	}

	hz, err := ParseFloat(args[1])
	if err != nil || hz < 0 {
		return []string{usage}
	}

	switch args[0] {
	case "start":
		s.startHz = hz
	case "stop":
		s.stopHz = hz
	default:
		return []string{usage}
	}

	return nil
}

func formatComplex(v complex128) string {
	return strconv.FormatFloat(real(v), 'g', -1, 64) + "," + strconv.FormatFloat(imag(v), 'g', -1, 64)
}

// CableModel returns the reflection seen at the input of a lossless cable of length
// lengthM and velocity factor vf terminated by a load with reflection coefficient gamma.
func CableModel(gamma complex128, lengthM, vf float64) ResponseFunc {
	delay := 2 * lengthM / (vf * SpeedOfLight)

	return func(f float64) complex128 {
		return gamma * cmplx.Exp(complex(0, -2*math.Pi*f*delay))
	}
}
