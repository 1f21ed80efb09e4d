// Package mixer sums multiple signals into a single one.
package mixer

import (
	"github.com/pipelined/synth"
)

// Mixer averages simultaneous samples of its signals. All signals are
// advanced in lock-step, exactly once per Mixer.Advance call.
type Mixer struct {
	signals []synth.Signal
	n       float64
}

// New returns new mixer. At least one signal is required, since the mean
// of nothing is undefined.
func New(signals ...synth.Signal) (*Mixer, error) {
	if len(signals) == 0 {
		return nil, synth.InvalidParameter("signals", 0)
	}
	for i, s := range signals {
		if s == nil {
			return nil, synth.InvalidParameter("signal", i)
		}
	}
	return &Mixer{
		signals: append([]synth.Signal(nil), signals...),
		n:       float64(len(signals)),
	}, nil
}

// Arm arms every signal.
func (m *Mixer) Arm() {
	for _, s := range m.signals {
		s.Arm()
	}
}

// Advance advances every signal by one sample and returns their mean.
func (m *Mixer) Advance() float64 {
	var sum float64
	for _, s := range m.signals {
		sum += s.Advance()
	}
	return sum / m.n
}

// Len returns number of mixed signals.
func (m *Mixer) Len() int {
	return len(m.signals)
}
