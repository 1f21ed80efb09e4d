//go:build portaudio

package portaudio_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelined/synth"
	"github.com/pipelined/synth/log"
	"github.com/pipelined/synth/osc"
	"github.com/pipelined/synth/portaudio"
	"github.com/pipelined/synth/signal"
	"github.com/pipelined/synth/stream"
)

func TestPlay(t *testing.T) {
	for _, format := range []signal.Format{signal.Float32LE, signal.Int16LE} {
		w, err := stream.New(portaudio.Device{}, synth.DefaultSampleRate, 2,
			stream.WithFormat(format),
			stream.WithBufferSize(512),
			stream.WithLogger(log.Discard()),
		)
		require.NoError(t, err)

		amplitude := 0.2
		if format == signal.Int16LE {
			amplitude = 6000
		}
		s, err := osc.NewSine(synth.A4, osc.WithAmplitude(amplitude))
		require.NoError(t, err)
		assert.NoError(t, w.Play(context.Background(), s, 0.5), format.String())
	}
}
