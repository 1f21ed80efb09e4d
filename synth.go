// Package synth generates periodic audio waveforms from parametric
// oscillators and streams the samples to a live device or a file container.
//
// The pipeline is pull-based: a sink arms a Signal once per pass and then
// calls Advance for every frame it needs.
package synth

import (
	"github.com/rs/xid"
)

const (
	// DefaultSampleRate is used when no sample rate is configured.
	DefaultSampleRate = 44100
	// A4 is the default oscillator frequency.
	A4 = 440.0
)

// Signal is a lazy, infinite and restartable sequence of samples.
//
// Arm must be called before the first Advance of every generation pass.
// Calling Arm again restarts the sequence from its initial state.
type Signal interface {
	Arm()
	Advance() float64
}

// NewUID returns new unique id value.
func NewUID() string {
	return xid.New().String()
}
