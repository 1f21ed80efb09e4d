// Package osc provides stateful oscillators. Each oscillator produces an
// infinite sequence of samples of one periodic waveform shape. Sequence is
// restarted with Arm, frequency, phase and amplitude can be changed between
// any two Advance calls and take effect on the very next sample.
package osc

import (
	"fmt"
	"math"
	"strings"

	"github.com/pipelined/synth"
)

// Oscillator is a synth.Signal with mutable frequency, phase and amplitude.
// Setters recompute derived stepping state before they return.
type Oscillator interface {
	synth.Signal
	SetFrequency(float64) error
	SetPhase(float64) error
	SetAmplitude(float64) error
	Frequency() float64
	Phase() float64
	Amplitude() float64
}

// Range is an output range of oscillator.
type Range struct {
	Min float64
	Max float64
}

// Natural is the range every shape is computed in. Values are squished only
// if oscillator has a different range.
var Natural = Range{Min: -1, Max: 1}

// Squish linearly remaps value from natural range into [min, max].
func Squish(value, min, max float64) float64 {
	return ((value+1)/2)*(max-min) + min
}

// Option provides a way to set functional parameters to oscillator.
type Option func(*params) error

type params struct {
	phase      float64
	amplitude  float64
	sampleRate int
	wave       Range
	threshold  float64
}

// WithPhase sets initial phase in degrees.
func WithPhase(degrees float64) Option {
	return func(p *params) error {
		if !finite(degrees) {
			return synth.InvalidParameter("phase", degrees)
		}
		p.phase = degrees
		return nil
	}
}

// WithAmplitude sets initial amplitude. Amplitude is not clamped, so it's
// up to caller to keep encoded values in the range of sink format.
func WithAmplitude(amplitude float64) Option {
	return func(p *params) error {
		if !finite(amplitude) {
			return synth.InvalidParameter("amplitude", amplitude)
		}
		p.amplitude = amplitude
		return nil
	}
}

// WithSampleRate sets sample rate. Default is synth.DefaultSampleRate.
func WithSampleRate(sampleRate int) Option {
	return func(p *params) error {
		if sampleRate <= 0 {
			return synth.InvalidParameter("sample rate", sampleRate)
		}
		p.sampleRate = sampleRate
		return nil
	}
}

// WithRange sets output range. Default is Natural.
func WithRange(min, max float64) Option {
	return func(p *params) error {
		if !finite(min) || !finite(max) {
			return synth.InvalidParameter("range", Range{Min: min, Max: max})
		}
		p.wave = Range{Min: min, Max: max}
		return nil
	}
}

// WithThreshold sets the sine level where square wave switches from range
// minimum to range maximum. Only square oscillator uses it.
func WithThreshold(threshold float64) Option {
	return func(p *params) error {
		if !finite(threshold) {
			return synth.InvalidParameter("threshold", threshold)
		}
		p.threshold = threshold
		return nil
	}
}

// stepper holds shape-specific derived state.
type stepper interface {
	// tune recomputes derived state from frequency and phase.
	tune(frequency, phase, sampleRate float64)
	// reset moves internal counter to zero.
	reset()
}

// oscillator is embedded by every shape.
type oscillator struct {
	// initial values, restored by Arm.
	frequency float64
	phase     float64
	amplitude float64

	sampleRate float64
	wave       Range
	threshold  float64

	// working copies.
	f float64
	p float64
	a float64

	state stepper
}

func (o *oscillator) init(frequency float64, state stepper, options []Option) error {
	if err := validFrequency(frequency); err != nil {
		return err
	}
	p := params{
		amplitude:  1,
		sampleRate: synth.DefaultSampleRate,
		wave:       Natural,
	}
	for _, option := range options {
		if err := option(&p); err != nil {
			return err
		}
	}
	*o = oscillator{
		frequency:  frequency,
		phase:      p.phase,
		amplitude:  p.amplitude,
		sampleRate: float64(p.sampleRate),
		wave:       p.wave,
		threshold:  p.threshold,
		state:      state,
	}
	o.Arm()
	return nil
}

// Arm resets working values to initial ones and restarts the waveform.
func (o *oscillator) Arm() {
	o.f = o.frequency
	o.p = o.phase
	o.a = o.amplitude
	o.state.tune(o.f, o.p, o.sampleRate)
	o.state.reset()
}

// SetFrequency changes working frequency. Frequency must be positive.
func (o *oscillator) SetFrequency(frequency float64) error {
	if err := validFrequency(frequency); err != nil {
		return err
	}
	o.f = frequency
	o.state.tune(o.f, o.p, o.sampleRate)
	return nil
}

// SetPhase changes working phase, value is in degrees.
func (o *oscillator) SetPhase(degrees float64) error {
	if !finite(degrees) {
		return synth.InvalidParameter("phase", degrees)
	}
	o.p = degrees
	o.state.tune(o.f, o.p, o.sampleRate)
	return nil
}

// SetAmplitude changes working amplitude.
func (o *oscillator) SetAmplitude(amplitude float64) error {
	if !finite(amplitude) {
		return synth.InvalidParameter("amplitude", amplitude)
	}
	o.a = amplitude
	return nil
}

// Frequency returns working frequency.
func (o *oscillator) Frequency() float64 {
	return o.f
}

// Phase returns working phase in degrees.
func (o *oscillator) Phase() float64 {
	return o.p
}

// Amplitude returns working amplitude.
func (o *oscillator) Amplitude() float64 {
	return o.a
}

// shape squishes the natural value into output range and applies amplitude.
func (o *oscillator) shape(value float64) float64 {
	if o.wave != Natural {
		value = Squish(value, o.wave.Min, o.wave.Max)
	}
	return value * o.a
}

func validFrequency(frequency float64) error {
	if !finite(frequency) || frequency <= 0 {
		return synth.InvalidParameter("frequency", frequency)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Shape identifies oscillator waveform.
type Shape int

const (
	// ShapeSine is a sine wave.
	ShapeSine Shape = iota
	// ShapeSquare is a square wave.
	ShapeSquare
	// ShapeSawtooth is a sawtooth wave.
	ShapeSawtooth
	// ShapeTriangle is a triangle wave.
	ShapeTriangle
)

var shapeNames = map[Shape]string{
	ShapeSine:     "sine",
	ShapeSquare:   "square",
	ShapeSawtooth: "sawtooth",
	ShapeTriangle: "triangle",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape returns shape by its name.
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range shapeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, synth.InvalidParameter("shape", name)
}

// New returns oscillator of provided shape.
func New(shape Shape, frequency float64, options ...Option) (Oscillator, error) {
	var (
		o   Oscillator
		err error
	)
	switch shape {
	case ShapeSine:
		o, err = NewSine(frequency, options...)
	case ShapeSquare:
		o, err = NewSquare(frequency, options...)
	case ShapeSawtooth:
		o, err = NewSawtooth(frequency, options...)
	case ShapeTriangle:
		o, err = NewTriangle(frequency, options...)
	default:
		err = synth.InvalidParameter("shape", shape)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}
