package osc

import "math"

// periodic counts samples and keeps the period length in samples.
type periodic struct {
	i      float64
	period float64
	offset float64
}

// tune recomputes both period and offset, offset is measured in samples of
// the current period.
func (s *periodic) tune(frequency, phase, sampleRate float64) {
	s.period = sampleRate / frequency
	s.offset = (phase + 90) / 360 * s.period
}

func (s *periodic) reset() {
	s.i = 0
}

// saw returns raw sawtooth value in [-1, 1) and moves one sample forward.
func (s *periodic) saw() float64 {
	div := (s.i + s.offset) / s.period
	v := 2 * (div - math.Floor(0.5+div))
	s.i++
	return v
}

// Sawtooth is a rising sawtooth wave oscillator.
type Sawtooth struct {
	oscillator
	periodic
}

// NewSawtooth returns new sawtooth oscillator.
func NewSawtooth(frequency float64, options ...Option) (*Sawtooth, error) {
	s := &Sawtooth{}
	if err := s.init(frequency, &s.periodic, options); err != nil {
		return nil, err
	}
	return s, nil
}

// Advance returns next sample.
func (s *Sawtooth) Advance() float64 {
	return s.shape(s.periodic.saw())
}

// Triangle is a triangle wave oscillator derived from sawtooth.
type Triangle struct {
	oscillator
	periodic
}

// NewTriangle returns new triangle oscillator.
func NewTriangle(frequency float64, options ...Option) (*Triangle, error) {
	t := &Triangle{}
	if err := t.init(frequency, &t.periodic, options); err != nil {
		return nil, err
	}
	return t, nil
}

// Advance returns next sample.
func (t *Triangle) Advance() float64 {
	return t.shape((math.Abs(t.periodic.saw()) - 0.5) * 2)
}
