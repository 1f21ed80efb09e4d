// Package aiff writes aiff containers.
package aiff

import (
	"fmt"
	"os"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"

	"github.com/pipelined/synth"
	"github.com/pipelined/synth/file"
	"github.com/pipelined/synth/signal"
)

// Container creates aiff files with 16 bit integer samples. Samples are
// stored big-endian, as aiff requires.
type Container struct{}

// Ext returns aiff extension.
func (Container) Ext() string {
	return "aiff"
}

// Create creates the file and aiff encoder for it.
func (Container) Create(path string, h file.Header) (file.Handle, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	format, err := h.Format()
	if err != nil {
		return nil, err
	}
	if format != signal.Int16LE {
		return nil, &synth.ContainerError{Op: "create", Path: path, Err: fmt.Errorf("unsupported sample format %v", format)}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, &synth.ContainerError{Op: "create", Path: path, Err: err}
	}
	return &Handle{
		path:    path,
		header:  h,
		file:    f,
		encoder: aiff.NewEncoder(f, h.SampleRate, int(format.BitDepth()), h.NumChannels),
		tally:   file.NewTally(path, h),
		ib: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: h.NumChannels,
				SampleRate:  h.SampleRate,
			},
			SourceBitDepth: int(format.BitDepth()),
		},
	}, nil
}

// Handle is an open aiff file.
type Handle struct {
	path    string
	header  file.Header
	file    *os.File
	encoder *aiff.Encoder
	tally   *file.Tally
	ib      *audio.IntBuffer
}

// WriteFrames writes encoded frames into file.
func (h *Handle) WriteFrames(b []byte) error {
	if err := h.tally.Add(b); err != nil {
		return err
	}
	h.ib.Data = signal.Int16LE.AsInterInt(b, h.header.NumChannels).Data
	if err := h.encoder.Write(h.ib); err != nil {
		return &synth.ContainerError{Op: "write", Path: h.path, Err: err}
	}
	return nil
}

// Close finalizes aiff header and closes the file.
func (h *Handle) Close() error {
	errEncoder := h.encoder.Close()
	errFile := h.file.Close()
	switch {
	case errEncoder != nil:
		return &synth.ContainerError{Op: "close", Path: h.path, Err: fmt.Errorf("encoder: %w", errEncoder)}
	case errFile != nil:
		return &synth.ContainerError{Op: "close", Path: h.path, Err: errFile}
	}
	return h.tally.Check()
}
