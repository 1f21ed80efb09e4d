// Package stream plays signals on a live audio device.
//
// Frames are encoded into a fixed-capacity buffer which is handed to the
// device once full. Writes are issued one at a time in generation order.
package stream

import (
	"context"
	"math"

	"github.com/pipelined/synth"
	"github.com/pipelined/synth/log"
	"github.com/pipelined/synth/metric"
	"github.com/pipelined/synth/signal"
)

// DefaultBufferSize is a default number of frames per device write.
const DefaultBufferSize = 1024

// Device opens output streams.
type Device interface {
	Open(format signal.Format, sampleRate, numChannels int) (Handle, error)
}

// Handle is an open device stream. Write blocks until data is accepted by
// the device and must not retain the slice after it returns.
type Handle interface {
	Write([]byte) error
	Close() error
}

// Writer plays signals on the device. Writer is not safe for concurrent
// use, but it can play any number of signals one after another.
type Writer struct {
	device      Device
	sampleRate  int
	numChannels int
	format      signal.Format
	bufferSize  int
	policy      signal.Policy
	log         log.Logger
	metric      *metric.Sink
}

// Option provides a way to set functional parameters to writer.
type Option func(*Writer) error

// WithFormat sets the sample format of device stream. Default is
// signal.Float32LE.
func WithFormat(format signal.Format) Option {
	return func(w *Writer) error {
		if format.Width() == 0 {
			return synth.InvalidParameter("format", format)
		}
		w.format = format
		return nil
	}
}

// WithBufferSize sets number of frames per device write.
func WithBufferSize(frames int) Option {
	return func(w *Writer) error {
		if frames <= 0 {
			return synth.InvalidParameter("buffer size", frames)
		}
		w.bufferSize = frames
		return nil
	}
}

// WithPolicy sets int encoding overflow policy.
func WithPolicy(policy signal.Policy) Option {
	return func(w *Writer) error {
		w.policy = policy
		return nil
	}
}

// WithLogger sets writer logger.
func WithLogger(l log.Logger) Option {
	return func(w *Writer) error {
		if l == nil {
			return synth.InvalidParameter("logger", nil)
		}
		w.log = l
		return nil
	}
}

// New returns new writer for the device.
func New(device Device, sampleRate, numChannels int, options ...Option) (*Writer, error) {
	if device == nil {
		return nil, synth.InvalidParameter("device", nil)
	}
	if sampleRate <= 0 {
		return nil, synth.InvalidParameter("sample rate", sampleRate)
	}
	if numChannels <= 0 {
		return nil, synth.InvalidParameter("channels", numChannels)
	}
	w := &Writer{
		device:      device,
		sampleRate:  sampleRate,
		numChannels: numChannels,
		format:      signal.Float32LE,
		bufferSize:  DefaultBufferSize,
		log:         log.GetLogger(),
	}
	for _, option := range options {
		if err := option(w); err != nil {
			return nil, err
		}
	}
	w.metric = metric.Register("stream", sampleRate)
	return w, nil
}

// Metric returns counters of this writer.
func (w *Writer) Metric() *metric.Sink {
	return w.metric
}

// Frames returns number of frames Play produces for duration in seconds.
func (w *Writer) Frames(seconds float64) int {
	return signal.FramesOf(w.sampleRate, seconds)
}

// Play arms the signal and plays it for duration in seconds. It returns
// after the last buffer is written and device stream is closed.
func (w *Writer) Play(ctx context.Context, src synth.Signal, seconds float64) error {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return synth.InvalidParameter("duration", seconds)
	}
	return w.PlayFrames(ctx, src, w.Frames(seconds))
}

// PlayFrames arms the signal and plays exactly frames number of frames.
func (w *Writer) PlayFrames(ctx context.Context, src synth.Signal, frames int) (err error) {
	if src == nil {
		return synth.InvalidParameter("signal", nil)
	}
	if frames <= 0 {
		return synth.InvalidParameter("frames", frames)
	}
	enc, err := signal.NewEncoder(w.format, w.numChannels, w.policy)
	if err != nil {
		return err
	}

	l := log.WithID(w.log, synth.NewUID())
	h, err := w.device.Open(w.format, w.sampleRate, w.numChannels)
	if err != nil {
		w.metric.Failed("open")
		return synth.DeviceErr("open", err)
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			w.metric.Failed("close")
			if err == nil {
				err = synth.DeviceErr("close", cerr)
			}
		}
	}()
	l.Debug("playing ", frames, " frames of ", w.format, " (", signal.DurationOf(w.sampleRate, int64(frames)), ")")

	src.Arm()
	buf := make([]byte, 0, w.bufferSize*enc.FrameSize())
	writes := 0
	for i := 0; i < frames; i++ {
		if buf, err = enc.Append(buf, src.Advance()); err != nil {
			w.metric.Failed("encode")
			return err
		}
		if len(buf) < cap(buf) && i < frames-1 {
			continue
		}
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = h.Write(buf); err != nil {
			w.metric.Failed("write")
			return synth.DeviceErr("write", err)
		}
		w.metric.Wrote(len(buf)/enc.FrameSize(), len(buf))
		writes++
		buf = buf[:0]
	}
	l.Debug("played ", frames, " frames in ", writes, " writes")
	return nil
}
