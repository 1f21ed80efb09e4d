// Package portaudio plays streams on the default portaudio output device.
package portaudio

import (
	"errors"

	"github.com/gordonklaus/portaudio"

	"github.com/pipelined/synth"
	"github.com/pipelined/synth/signal"
	"github.com/pipelined/synth/stream"
)

// Device is a default portaudio output device. Every opened stream
// initializes portaudio and terminates it on close.
type Device struct{}

// Open initializes portaudio and starts a blocking output stream.
func (Device) Open(format signal.Format, sampleRate, numChannels int) (stream.Handle, error) {
	h := &Handle{
		format:      format,
		numChannels: numChannels,
	}
	var buf interface{}
	switch format {
	case signal.Float32LE:
		buf = &h.floats
	case signal.Int16LE:
		buf = &h.ints
	default:
		return nil, synth.InvalidParameter("format", format)
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, deviceError("initialize", err)
	}
	s, err := portaudio.OpenDefaultStream(0, numChannels, float64(sampleRate), 0, buf)
	if err != nil {
		portaudio.Terminate()
		return nil, deviceError("open", err)
	}
	if err := s.Start(); err != nil {
		s.Close()
		portaudio.Terminate()
		return nil, deviceError("start", err)
	}
	h.stream = s
	return h, nil
}

// Handle is an open portaudio stream.
type Handle struct {
	format      signal.Format
	numChannels int
	stream      *portaudio.Stream
	floats      []float32
	ints        []int16
}

// Write converts frames into stream buffer and blocks until portaudio
// accepts it. Stream writes as many frames as the buffer holds.
func (h *Handle) Write(b []byte) error {
	width := h.format.Width()
	n := len(b) / width
	switch h.format {
	case signal.Float32LE:
		if cap(h.floats) < n {
			h.floats = make([]float32, n)
		}
		h.floats = h.floats[:n]
		for i := range h.floats {
			h.floats[i] = float32(signal.DecodeFloat32(b[i*width:]))
		}
	case signal.Int16LE:
		if cap(h.ints) < n {
			h.ints = make([]int16, n)
		}
		h.ints = h.ints[:n]
		for i := range h.ints {
			h.ints[i] = int16(signal.DecodeInt16(b[i*width:]))
		}
	}
	if err := h.stream.Write(); err != nil {
		return deviceError("write", err)
	}
	return nil
}

// Close stops the stream and terminates portaudio. All steps are executed
// even if some of them fail, first error is returned.
func (h *Handle) Close() error {
	var errs []error
	if err := h.stream.Stop(); err != nil {
		errs = append(errs, deviceError("stop", err))
	}
	if err := h.stream.Close(); err != nil {
		errs = append(errs, deviceError("close", err))
	}
	if err := portaudio.Terminate(); err != nil {
		errs = append(errs, deviceError("terminate", err))
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// deviceError attaches native portaudio error code.
func deviceError(op string, err error) error {
	de := &synth.DeviceError{Op: op, Err: err}
	var paErr portaudio.Error
	if errors.As(err, &paErr) {
		de.Code = int(paErr)
	}
	return de
}
