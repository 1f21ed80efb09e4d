// Package mp3 writes mp3 files encoded with lame.
package mp3

import (
	"fmt"
	"os"

	"github.com/viert/lame"

	"github.com/pipelined/synth"
	"github.com/pipelined/synth/file"
	"github.com/pipelined/synth/signal"
)

const (
	// DefaultBitRate is a default mp3 bit rate in kbps.
	DefaultBitRate = 192
	// DefaultQuality is a default lame quality, 0 is the best and 9 is the worst.
	DefaultQuality = 2
)

// Container creates mp3 files from 16 bit integer mono or stereo frames.
// Use New to get a container with default settings.
type Container struct {
	// BitRate in kbps, must be positive.
	BitRate int
	// Quality from 0 (best) to 9 (worst).
	Quality int
}

// New returns container with DefaultBitRate and DefaultQuality.
func New() Container {
	return Container{
		BitRate: DefaultBitRate,
		Quality: DefaultQuality,
	}
}

// Ext returns mp3 extension.
func (Container) Ext() string {
	return "mp3"
}

// Create creates the file and lame encoder for it.
func (c Container) Create(path string, h file.Header) (file.Handle, error) {
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
	if h.NumChannels > 2 {
		return nil, &synth.ContainerError{Op: "create", Path: path, Err: fmt.Errorf("unsupported number of channels %d", h.NumChannels)}
	}
	if c.BitRate <= 0 {
		return nil, synth.InvalidParameter("bit rate", c.BitRate)
	}
	if c.Quality < 0 || c.Quality > 9 {
		return nil, synth.InvalidParameter("quality", c.Quality)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, &synth.ContainerError{Op: "create", Path: path, Err: err}
	}
	wr := lame.NewWriter(f)
	wr.Encoder.SetBitrate(c.BitRate)
	wr.Encoder.SetQuality(c.Quality)
	wr.Encoder.SetNumChannels(h.NumChannels)
	wr.Encoder.SetInSamplerate(h.SampleRate)
	if h.NumChannels == 2 {
		wr.Encoder.SetMode(lame.JOINT_STEREO)
	}
	wr.Encoder.SetVBR(lame.VBR_RH)
	wr.Encoder.InitParams()
	return &Handle{
		path:  path,
		file:  f,
		wr:    wr,
		tally: file.NewTally(path, h),
	}, nil
}

// Handle is an open mp3 file.
type Handle struct {
	path  string
	file  *os.File
	wr    *lame.LameWriter
	tally *file.Tally
}

// WriteFrames encodes int16 frames into mp3.
func (h *Handle) WriteFrames(b []byte) error {
	if err := h.tally.Add(b); err != nil {
		return err
	}
	if _, err := h.wr.Write(b); err != nil {
		return &synth.ContainerError{Op: "write", Path: h.path, Err: err}
	}
	return nil
}

// Close flushes lame buffers and closes the file.
func (h *Handle) Close() error {
	errEncoder := h.wr.Close()
	errFile := h.file.Close()
	switch {
	case errEncoder != nil:
		return &synth.ContainerError{Op: "close", Path: h.path, Err: fmt.Errorf("encoder: %w", errEncoder)}
	case errFile != nil:
		return &synth.ContainerError{Op: "close", Path: h.path, Err: errFile}
	}
	return h.tally.Check()
}
