// Package wav writes wav containers.
package wav

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pipelined/synth"
	"github.com/pipelined/synth/file"
	"github.com/pipelined/synth/signal"
)

const (
	// formatPCM is wav audio format for integer samples.
	formatPCM = 1
	// formatFloat is wav audio format for IEEE float samples.
	formatFloat = 3
)

// Container creates wav files. It supports 16 bit integer and 32 bit
// float samples.
type Container struct{}

// Ext returns wav extension.
func (Container) Ext() string {
	return "wav"
}

// Create creates the file and wav encoder for it.
func (Container) Create(path string, h file.Header) (file.Handle, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	format, err := h.Format()
	if err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, &synth.ContainerError{Op: "create", Path: path, Err: err}
	}
	audioFormat := formatPCM
	if format.IsFloat() {
		audioFormat = formatFloat
	}
	return &Handle{
		path:    path,
		format:  format,
		header:  h,
		file:    f,
		encoder: wav.NewEncoder(f, h.SampleRate, int(format.BitDepth()), h.NumChannels, audioFormat),
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

// Handle is an open wav file.
type Handle struct {
	path    string
	format  signal.Format
	header  file.Header
	file    *os.File
	encoder *wav.Encoder
	tally   *file.Tally
	ib      *audio.IntBuffer
}

// WriteFrames writes encoded frames into file.
func (h *Handle) WriteFrames(b []byte) error {
	if err := h.tally.Add(b); err != nil {
		return err
	}
	h.ib.Data = h.format.AsInterInt(b, h.header.NumChannels).Data
	if err := h.encoder.Write(h.ib); err != nil {
		return &synth.ContainerError{Op: "write", Path: h.path, Err: err}
	}
	return nil
}

// Close finalizes wav header and closes the file. The file is closed even
// if encoder fails.
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
