package file

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pipelined/synth"
	"github.com/pipelined/synth/signal"
)

// MaxPayload is the largest payload in bytes. Containers keep chunk sizes
// in 32-bit fields, some room is left for headers.
const MaxPayload = math.MaxUint32 - 1<<10

// Header declares the layout of container payload.
type Header struct {
	NumChannels int
	SampleWidth int // bytes per sample
	SampleRate  int
	Frames      int
}

// Format returns the sample format declared by sample width.
func (h Header) Format() (signal.Format, error) {
	return signal.FormatOf(h.SampleWidth)
}

// FrameSize returns number of bytes per frame.
func (h Header) FrameSize() int {
	return h.NumChannels * h.SampleWidth
}

// Validate checks that every header field is positive, sample width is
// supported and payload fits MaxPayload.
func (h Header) Validate() error {
	switch {
	case h.NumChannels <= 0:
		return synth.InvalidParameter("channels", h.NumChannels)
	case h.SampleRate <= 0:
		return synth.InvalidParameter("sample rate", h.SampleRate)
	case h.Frames <= 0:
		return synth.InvalidParameter("frames", h.Frames)
	}
	if _, err := h.Format(); err != nil {
		return err
	}
	if int64(h.NumChannels) > MaxPayload/int64(h.SampleWidth) {
		return synth.InvalidParameter("channels", h.NumChannels)
	}
	if int64(h.Frames) > MaxPayload/int64(h.FrameSize()) {
		return synth.InvalidParameter("frames", h.Frames)
	}
	return nil
}

// Container creates files of a single type.
type Container interface {
	// Ext returns file extension without a dot.
	Ext() string
	// Create opens a new file at path with declared header.
	Create(path string, h Header) (Handle, error)
}

// Handle is an open container file. Close must be called exactly once and
// fails if number of written frames doesn't match the header.
type Handle interface {
	WriteFrames([]byte) error
	Close() error
}

// Tally counts frames written into a container.
type Tally struct {
	path    string
	header  Header
	written int
}

// NewTally returns new tally for declared header.
func NewTally(path string, h Header) *Tally {
	return &Tally{
		path:   path,
		header: h,
	}
}

// Add counts frames in b. Payload must consist of whole frames and must
// not exceed declared number of frames.
func (t *Tally) Add(b []byte) error {
	frameSize := t.header.FrameSize()
	if frameSize == 0 || len(b)%frameSize != 0 {
		return &synth.ContainerError{
			Op:   "write",
			Path: t.path,
			Err:  fmt.Errorf("payload of %d bytes is not aligned to %d bytes frames", len(b), frameSize),
		}
	}
	frames := len(b) / frameSize
	if t.written+frames > t.header.Frames {
		return &synth.ContainerError{
			Op:   "write",
			Path: t.path,
			Err:  fmt.Errorf("%d frames exceed declared %d frames", t.written+frames, t.header.Frames),
		}
	}
	t.written += frames
	return nil
}

// Written returns number of counted frames.
func (t *Tally) Written() int {
	return t.written
}

// Check returns error if written frames don't match declared frames.
func (t *Tally) Check() error {
	if t.written != t.header.Frames {
		return &synth.ContainerError{
			Op:   "close",
			Path: t.path,
			Err:  fmt.Errorf("header declares %d frames, written %d frames", t.header.Frames, t.written),
		}
	}
	return nil
}

// TimeLayout is used for default file names.
const TimeLayout = "2006-01-02-15-04-05"

// Name returns a file name with extension. Empty name is replaced with
// the timestamp.
func Name(name, ext string, now time.Time) string {
	if name == "" {
		name = now.Format(TimeLayout)
	}
	if ext != "" && !strings.HasSuffix(name, "."+ext) {
		name = name + "." + ext
	}
	return name
}
