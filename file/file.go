// Package file writes signals into container files.
//
// Whole signal is encoded into a single contiguous payload and written
// with one call, header declares exact number of frames.
package file

import (
	"context"
	"math"
	"time"

	"github.com/pipelined/synth"
	"github.com/pipelined/synth/log"
	"github.com/pipelined/synth/metric"
	"github.com/pipelined/synth/signal"
)

const (
	// DefaultNumChannels is stereo.
	DefaultNumChannels = 2
	// DefaultSampleWidth is 16 bit.
	DefaultSampleWidth = 2
	// cancelCheck is a number of frames between context checks.
	cancelCheck = 4096
)

// Writer writes signals into containers.
type Writer struct {
	container   Container
	numChannels int
	sampleWidth int
	sampleRate  int
	policy      signal.Policy
	log         log.Logger
	metric      *metric.Sink
}

// Option provides a way to set functional parameters to writer.
type Option func(*Writer) error

// WithNumChannels sets number of channels.
func WithNumChannels(numChannels int) Option {
	return func(w *Writer) error {
		if numChannels <= 0 {
			return synth.InvalidParameter("channels", numChannels)
		}
		w.numChannels = numChannels
		return nil
	}
}

// WithSampleWidth sets bytes per sample: 2 for int16 and 4 for float32.
func WithSampleWidth(sampleWidth int) Option {
	return func(w *Writer) error {
		if _, err := signal.FormatOf(sampleWidth); err != nil {
			return err
		}
		w.sampleWidth = sampleWidth
		return nil
	}
}

// WithSampleRate sets frame rate.
func WithSampleRate(sampleRate int) Option {
	return func(w *Writer) error {
		if sampleRate <= 0 {
			return synth.InvalidParameter("sample rate", sampleRate)
		}
		w.sampleRate = sampleRate
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

// New returns new writer for container.
func New(c Container, options ...Option) (*Writer, error) {
	if c == nil {
		return nil, synth.InvalidParameter("container", nil)
	}
	w := &Writer{
		container:   c,
		numChannels: DefaultNumChannels,
		sampleWidth: DefaultSampleWidth,
		sampleRate:  synth.DefaultSampleRate,
		log:         log.GetLogger(),
	}
	for _, option := range options {
		if err := option(w); err != nil {
			return nil, err
		}
	}
	kind := c.Ext()
	if kind == "" {
		kind = "file"
	}
	w.metric = metric.Register(kind, w.sampleRate)
	return w, nil
}

// Metric returns counters of this writer.
func (w *Writer) Metric() *metric.Sink {
	return w.metric
}

// WriteSeconds writes sampleRate * seconds frames.
func (w *Writer) WriteSeconds(ctx context.Context, src synth.Signal, name string, seconds float64) (string, error) {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", synth.InvalidParameter("duration", seconds)
	}
	return w.Write(ctx, src, name, signal.FramesOf(w.sampleRate, seconds))
}

// Write arms the signal and writes exactly frames number of frames into a
// new container file. Resolved path is returned, also on failure once the
// file was created.
func (w *Writer) Write(ctx context.Context, src synth.Signal, name string, frames int) (path string, err error) {
	if src == nil {
		return "", synth.InvalidParameter("signal", nil)
	}
	header := Header{
		NumChannels: w.numChannels,
		SampleWidth: w.sampleWidth,
		SampleRate:  w.sampleRate,
		Frames:      frames,
	}
	if err := header.Validate(); err != nil {
		return "", err
	}
	format, err := header.Format()
	if err != nil {
		return "", err
	}
	enc, err := signal.NewEncoder(format, w.numChannels, w.policy)
	if err != nil {
		return "", err
	}

	path = Name(name, w.container.Ext(), time.Now())
	l := log.WithID(w.log, synth.NewUID())
	h, err := w.container.Create(path, header)
	if err != nil {
		w.metric.Failed("create")
		return "", synth.ContainerErr("create", path, err)
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			w.metric.Failed("close")
			if err == nil {
				err = synth.ContainerErr("close", path, cerr)
			}
		}
	}()
	l.Debug("writing ", frames, " frames of ", format, " to ", path)

	src.Arm()
	payload := make([]byte, 0, frames*enc.FrameSize())
	for i := 0; i < frames; i++ {
		if i%cancelCheck == 0 {
			if err = ctx.Err(); err != nil {
				return path, err
			}
		}
		if payload, err = enc.Append(payload, src.Advance()); err != nil {
			w.metric.Failed("encode")
			return path, err
		}
	}
	if err = h.WriteFrames(payload); err != nil {
		w.metric.Failed("write")
		return path, synth.ContainerErr("write", path, err)
	}
	w.metric.Wrote(frames, len(payload))
	l.Debug("written ", len(payload), " bytes to ", path)
	return path, nil
}
