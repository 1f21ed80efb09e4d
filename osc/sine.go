package osc

import "math"

// angular is a phase accumulator which steps in radians.
type angular struct {
	i      float64
	step   float64
	offset float64
}

func (s *angular) tune(frequency, phase, sampleRate float64) {
	s.step = 2 * math.Pi * frequency / sampleRate
	s.offset = phase / 360 * 2 * math.Pi
}

func (s *angular) reset() {
	s.i = 0
}

// next returns sine of current position and moves one step forward.
func (s *angular) next() float64 {
	v := math.Sin(s.i + s.offset)
	s.i += s.step
	return v
}

// Sine is a sine wave oscillator.
type Sine struct {
	oscillator
	angular
}

// NewSine returns new sine oscillator.
func NewSine(frequency float64, options ...Option) (*Sine, error) {
	s := &Sine{}
	if err := s.init(frequency, &s.angular, options); err != nil {
		return nil, err
	}
	return s, nil
}

// Advance returns next sample.
func (s *Sine) Advance() float64 {
	return s.shape(s.angular.next())
}

// Square is a square wave oscillator. It follows the sine wave and outputs
// range minimum while sine is below threshold and range maximum otherwise.
// Range bounds are used as is, square output is never squished.
type Square struct {
	oscillator
	angular
}

// NewSquare returns new square oscillator.
func NewSquare(frequency float64, options ...Option) (*Square, error) {
	s := &Square{}
	if err := s.init(frequency, &s.angular, options); err != nil {
		return nil, err
	}
	return s, nil
}

// Advance returns next sample.
func (s *Square) Advance() float64 {
	v := s.wave.Max
	if s.angular.next() < s.threshold {
		v = s.wave.Min
	}
	return v * s.a
}
