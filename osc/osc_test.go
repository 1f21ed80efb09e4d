package osc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelined/synth"
	"github.com/pipelined/synth/osc"
)

const (
	sampleRate = 44100
	delta      = 1e-9
)

func take(s synth.Signal, n int) []float64 {
	result := make([]float64, n)
	for i := range result {
		result[i] = s.Advance()
	}
	return result
}

func TestZeroState(t *testing.T) {
	tests := []struct {
		description string
		shape       osc.Shape
		options     []osc.Option
		expected    float64
	}{
		{
			description: "sine starts at sin(0)",
			shape:       osc.ShapeSine,
			expected:    0,
		},
		{
			description: "square starts at range max",
			shape:       osc.ShapeSquare,
			expected:    1,
		},
		{
			description: "sawtooth starts at quarter period offset",
			shape:       osc.ShapeSawtooth,
			expected:    0.5,
		},
		{
			description: "sawtooth with -90 phase starts at zero",
			shape:       osc.ShapeSawtooth,
			options:     []osc.Option{osc.WithPhase(-90)},
			expected:    0,
		},
		{
			description: "triangle starts at zero",
			shape:       osc.ShapeTriangle,
			expected:    0,
		},
		{
			description: "sine with 90 phase starts at one",
			shape:       osc.ShapeSine,
			options:     []osc.Option{osc.WithPhase(90)},
			expected:    1,
		},
	}
	for _, test := range tests {
		o, err := osc.New(test.shape, synth.A4, append(test.options, osc.WithSampleRate(sampleRate))...)
		require.NoError(t, err, test.description)
		o.Arm()
		assert.InDelta(t, test.expected, o.Advance(), delta, test.description)
	}
}

func TestSineSequence(t *testing.T) {
	s, err := osc.NewSine(synth.A4, osc.WithSampleRate(sampleRate))
	require.NoError(t, err)
	s.Arm()
	step := 2 * math.Pi * synth.A4 / sampleRate
	for i, v := range take(s, 100) {
		assert.InDelta(t, math.Sin(float64(i)*step), v, delta)
	}
}

func TestSawtoothSequence(t *testing.T) {
	// period of 4 samples.
	s, err := osc.NewSawtooth(11025, osc.WithSampleRate(sampleRate), osc.WithPhase(-90))
	require.NoError(t, err)
	s.Arm()
	assert.InDeltaSlice(t, []float64{0, 0.5, -1, -0.5, 0, 0.5, -1, -0.5}, take(s, 8), delta)
}

func TestTriangleSequence(t *testing.T) {
	// period of 4 samples, phase offset is a quarter period.
	tr, err := osc.NewTriangle(11025, osc.WithSampleRate(sampleRate))
	require.NoError(t, err)
	tr.Arm()
	assert.InDeltaSlice(t, []float64{0, 1, 0, -1, 0, 1, 0, -1}, take(tr, 8), delta)
}

func TestSquareThreshold(t *testing.T) {
	s, err := osc.NewSquare(11025, osc.WithSampleRate(sampleRate), osc.WithRange(-3, 5), osc.WithThreshold(0.5))
	require.NoError(t, err)
	s.Arm()
	// sine values: 0, 1, 0, -1.
	assert.InDeltaSlice(t, []float64{-3, 5, -3, -3}, take(s, 4), delta)
}

func TestRestart(t *testing.T) {
	for _, shape := range []osc.Shape{osc.ShapeSine, osc.ShapeSquare, osc.ShapeSawtooth, osc.ShapeTriangle} {
		o, err := osc.New(shape, 523.25, osc.WithPhase(30), osc.WithAmplitude(0.8))
		require.NoError(t, err, shape.String())
		o.Arm()
		first := take(o, 1000)
		require.NoError(t, o.SetFrequency(100))
		require.NoError(t, o.SetPhase(45))
		require.NoError(t, o.SetAmplitude(3))
		take(o, 10)
		o.Arm()
		assert.Equal(t, first, take(o, 1000), shape.String())
		assert.Equal(t, 523.25, o.Frequency(), shape.String())
		assert.Equal(t, 30.0, o.Phase(), shape.String())
		assert.Equal(t, 0.8, o.Amplitude(), shape.String())
	}
}

func TestFrequencyChangeNoLag(t *testing.T) {
	s, err := osc.NewSine(1000, osc.WithSampleRate(sampleRate))
	require.NoError(t, err)
	s.Arm()
	s.Advance()
	s.Advance()
	// position after two steps.
	i := 2 * 2 * math.Pi * 1000 / sampleRate
	require.NoError(t, s.SetFrequency(2000))
	assert.InDelta(t, math.Sin(i), s.Advance(), delta)
	i += 2 * math.Pi * 2000 / sampleRate
	assert.InDelta(t, math.Sin(i), s.Advance(), delta)
}

func TestSawtoothFrequencyChange(t *testing.T) {
	s, err := osc.NewSawtooth(11025, osc.WithSampleRate(sampleRate), osc.WithPhase(-90))
	require.NoError(t, err)
	s.Arm()
	take(s, 2)
	// period is 8 samples now, position is 2.
	require.NoError(t, s.SetFrequency(5512.5))
	assert.InDelta(t, 0.5, s.Advance(), delta)
	assert.InDelta(t, 0.75, s.Advance(), delta)
}

func TestPhaseChange(t *testing.T) {
	s, err := osc.NewSine(synth.A4, osc.WithSampleRate(sampleRate))
	require.NoError(t, err)
	s.Arm()
	require.NoError(t, s.SetPhase(90))
	assert.InDelta(t, 1, s.Advance(), delta)
	assert.Equal(t, 90.0, s.Phase())
}

func TestAmplitudeAndRange(t *testing.T) {
	tests := []struct {
		description string
		options     []osc.Option
		expected    float64
	}{
		{
			description: "amplitude is not clamped",
			options:     []osc.Option{osc.WithPhase(90), osc.WithAmplitude(32000)},
			expected:    32000,
		},
		{
			description: "squished into [0, 1]",
			options:     []osc.Option{osc.WithRange(0, 1)},
			expected:    0.5,
		},
		{
			description: "squished then scaled",
			options:     []osc.Option{osc.WithPhase(-90), osc.WithRange(0, 10), osc.WithAmplitude(2)},
			expected:    0,
		},
		{
			description: "squished peak then scaled",
			options:     []osc.Option{osc.WithPhase(90), osc.WithRange(0, 10), osc.WithAmplitude(2)},
			expected:    20,
		},
	}
	for _, test := range tests {
		s, err := osc.NewSine(synth.A4, test.options...)
		require.NoError(t, err, test.description)
		s.Arm()
		assert.InDelta(t, test.expected, s.Advance(), delta, test.description)
	}
}

func TestSquish(t *testing.T) {
	assert.Equal(t, 0.0, osc.Squish(-1, 0, 1))
	assert.Equal(t, 0.5, osc.Squish(0, 0, 1))
	assert.Equal(t, 1.0, osc.Squish(1, 0, 1))
	assert.Equal(t, 32000.0, osc.Squish(1, -32767, 32000))
}

func TestInvalidParameters(t *testing.T) {
	tests := []struct {
		description string
		shape       osc.Shape
		frequency   float64
		options     []osc.Option
	}{
		{
			description: "zero frequency sawtooth",
			shape:       osc.ShapeSawtooth,
			frequency:   0,
		},
		{
			description: "zero frequency triangle",
			shape:       osc.ShapeTriangle,
			frequency:   0,
		},
		{
			description: "negative frequency sine",
			shape:       osc.ShapeSine,
			frequency:   -1,
		},
		{
			description: "NaN frequency square",
			shape:       osc.ShapeSquare,
			frequency:   math.NaN(),
		},
		{
			description: "zero sample rate",
			shape:       osc.ShapeSine,
			frequency:   synth.A4,
			options:     []osc.Option{osc.WithSampleRate(0)},
		},
		{
			description: "infinite amplitude",
			shape:       osc.ShapeSine,
			frequency:   synth.A4,
			options:     []osc.Option{osc.WithAmplitude(math.Inf(1))},
		},
		{
			description: "unknown shape",
			shape:       osc.Shape(42),
			frequency:   synth.A4,
		},
	}
	for _, test := range tests {
		o, err := osc.New(test.shape, test.frequency, test.options...)
		assert.Nil(t, o, test.description)
		assert.True(t, errors.Is(err, synth.ErrInvalidParameter), test.description)
	}
}

func TestInvalidMutation(t *testing.T) {
	s, err := osc.NewTriangle(synth.A4)
	require.NoError(t, err)
	s.Arm()
	before := s.Advance()

	err = s.SetFrequency(0)
	assert.True(t, errors.Is(err, synth.ErrInvalidParameter))
	assert.Equal(t, synth.A4, s.Frequency())
	err = s.SetPhase(math.NaN())
	assert.True(t, errors.Is(err, synth.ErrInvalidParameter))
	err = s.SetAmplitude(math.Inf(-1))
	assert.True(t, errors.Is(err, synth.ErrInvalidParameter))

	s.Arm()
	assert.Equal(t, before, s.Advance())
}

func TestParseShape(t *testing.T) {
	for _, shape := range []osc.Shape{osc.ShapeSine, osc.ShapeSquare, osc.ShapeSawtooth, osc.ShapeTriangle} {
		parsed, err := osc.ParseShape(shape.String())
		assert.NoError(t, err)
		assert.Equal(t, shape, parsed)
	}
	_, err := osc.ParseShape("noise")
	assert.True(t, errors.Is(err, synth.ErrInvalidParameter))
	assert.Equal(t, "Shape(9)", osc.Shape(9).String())
}
