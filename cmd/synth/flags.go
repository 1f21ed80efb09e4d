package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/pipelined/synth"
	"github.com/pipelined/synth/mixer"
	"github.com/pipelined/synth/osc"
)

// floatList is a repeatable flag, every value can also hold semicolon
// separated list.
type floatList []float64

func (l *floatList) String() string {
	s := make([]string, len(*l))
	for i, v := range *l {
		s[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(s, ";")
}

func (l *floatList) Set(value string) error {
	for _, v := range strings.Split(value, ";") {
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", v, err)
		}
		*l = append(*l, f)
	}
	return nil
}

// oscillatorFlags are shared by commands which generate signals.
type oscillatorFlags struct {
	shape       string
	frequencies floatList
	phase       float64
	amplitude   float64
	sampleRate  int
}

func (f *oscillatorFlags) register(fs *flag.FlagSet, amplitude float64) {
	fs.StringVar(&f.shape, "shape", osc.ShapeSine.String(), "waveform shape: sine, square, sawtooth or triangle")
	fs.Var(&f.frequencies, "freq", "frequency in hertz, repeat to mix multiple oscillators (default 440)")
	fs.Float64Var(&f.phase, "phase", 0, "phase in degrees")
	fs.Float64Var(&f.amplitude, "amplitude", amplitude, "amplitude")
	fs.IntVar(&f.sampleRate, "rate", synth.DefaultSampleRate, "sample rate")
}

// signal returns single oscillator or a mixer of oscillators.
func (f *oscillatorFlags) signal() (synth.Signal, error) {
	shape, err := osc.ParseShape(f.shape)
	if err != nil {
		return nil, err
	}
	frequencies := f.frequencies
	if len(frequencies) == 0 {
		frequencies = floatList{synth.A4}
	}
	signals := make([]synth.Signal, 0, len(frequencies))
	for _, frequency := range frequencies {
		o, err := osc.New(shape, frequency,
			osc.WithPhase(f.phase),
			osc.WithAmplitude(f.amplitude),
			osc.WithSampleRate(f.sampleRate),
		)
		if err != nil {
			return nil, err
		}
		signals = append(signals, o)
	}
	if len(signals) == 1 {
		return signals[0], nil
	}
	m, err := mixer.New(signals...)
	if err != nil {
		return nil, err
	}
	return m, nil
}
