// Package oto plays streams with the oto library.
//
// Oto allows a single context per process, so the first opened stream
// fixes the sample format, rate and channels for the process lifetime.
package oto

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/pipelined/synth"
	"github.com/pipelined/synth/signal"
	"github.com/pipelined/synth/stream"
)

// drainInterval is a polling interval while buffered data is played.
const drainInterval = 10 * time.Millisecond

type contextParams struct {
	format      signal.Format
	sampleRate  int
	numChannels int
}

var (
	mu     sync.Mutex
	otoCtx *oto.Context
	params contextParams
)

// Device is an oto output device.
type Device struct {
	// BufferSize is a device buffer duration, zero means oto default.
	BufferSize time.Duration
}

// Open returns a stream which feeds a new oto player.
func (d Device) Open(format signal.Format, sampleRate, numChannels int) (stream.Handle, error) {
	ctx, err := d.context(format, sampleRate, numChannels)
	if err != nil {
		return nil, err
	}
	pr, pw := io.Pipe()
	player := ctx.NewPlayer(pr)
	player.Play()
	return &Handle{
		player: player,
		reader: pr,
		writer: pw,
	}, nil
}

func (d Device) context(format signal.Format, sampleRate, numChannels int) (*oto.Context, error) {
	mu.Lock()
	defer mu.Unlock()
	p := contextParams{
		format:      format,
		sampleRate:  sampleRate,
		numChannels: numChannels,
	}
	if otoCtx != nil {
		if p != params {
			return nil, &synth.DeviceError{
				Op:  "open",
				Err: fmt.Errorf("oto context is created for %v %dHz %dch", params.format, params.sampleRate, params.numChannels),
			}
		}
		return otoCtx, nil
	}

	var otoFormat oto.Format
	switch format {
	case signal.Float32LE:
		otoFormat = oto.FormatFloat32LE
	case signal.Int16LE:
		otoFormat = oto.FormatSignedInt16LE
	default:
		return nil, synth.InvalidParameter("format", format)
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: numChannels,
		Format:       otoFormat,
		BufferSize:   d.BufferSize,
	})
	if err != nil {
		return nil, &synth.DeviceError{Op: "open", Err: err}
	}
	<-ready
	otoCtx = ctx
	params = p
	return otoCtx, nil
}

// Handle is an open oto player stream.
type Handle struct {
	player *oto.Player
	reader *io.PipeReader
	writer *io.PipeWriter
}

// Write blocks until player consumes all of the data.
func (h *Handle) Write(b []byte) error {
	if _, err := h.writer.Write(b); err != nil {
		return &synth.DeviceError{Op: "write", Err: err}
	}
	return nil
}

// Close waits until buffered data is played and closes the player.
func (h *Handle) Close() error {
	h.writer.Close()
	for h.player.IsPlaying() {
		time.Sleep(drainInterval)
	}
	err := h.player.Close()
	h.reader.Close()
	if err != nil {
		return &synth.DeviceError{Op: "close", Err: err}
	}
	return nil
}
