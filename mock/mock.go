// Package mock provides in-memory devices and containers for tests.
package mock

import (
	"errors"
	"sync"

	"github.com/pipelined/synth/file"
	"github.com/pipelined/synth/signal"
	"github.com/pipelined/synth/stream"
)

// ErrMock is returned by failing mocks.
var ErrMock = errors.New("mock error")

// Device records everything written to its streams. Write failure can be
// injected after a number of successful writes.
type Device struct {
	sync.Mutex
	Format      signal.Format
	SampleRate  int
	NumChannels int

	ErrOpen    error
	ErrWrite   error
	ErrClose   error
	FailWrites int // number of successful writes before ErrWrite is returned

	opened int
	closed int
	writes [][]byte
}

// Open implements stream.Device.
func (d *Device) Open(format signal.Format, sampleRate, numChannels int) (stream.Handle, error) {
	d.Lock()
	defer d.Unlock()
	if d.ErrOpen != nil {
		return nil, d.ErrOpen
	}
	d.Format = format
	d.SampleRate = sampleRate
	d.NumChannels = numChannels
	d.opened++
	return &deviceHandle{d: d}, nil
}

// Opened returns number of opened streams.
func (d *Device) Opened() int {
	d.Lock()
	defer d.Unlock()
	return d.opened
}

// Closed returns number of closed streams.
func (d *Device) Closed() int {
	d.Lock()
	defer d.Unlock()
	return d.closed
}

// Writes returns copies of all written buffers in order.
func (d *Device) Writes() [][]byte {
	d.Lock()
	defer d.Unlock()
	return append([][]byte(nil), d.writes...)
}

// Bytes returns all written data.
func (d *Device) Bytes() []byte {
	d.Lock()
	defer d.Unlock()
	var result []byte
	for _, w := range d.writes {
		result = append(result, w...)
	}
	return result
}

type deviceHandle struct {
	d      *Device
	closed bool
}

func (h *deviceHandle) Write(b []byte) error {
	h.d.Lock()
	defer h.d.Unlock()
	if h.closed {
		return errors.New("write to closed stream")
	}
	if h.d.ErrWrite != nil && len(h.d.writes) >= h.d.FailWrites {
		return h.d.ErrWrite
	}
	h.d.writes = append(h.d.writes, append([]byte(nil), b...))
	return nil
}

func (h *deviceHandle) Close() error {
	h.d.Lock()
	defer h.d.Unlock()
	if h.closed {
		return errors.New("stream closed twice")
	}
	h.closed = true
	h.d.closed++
	return h.d.ErrClose
}

// Container keeps created files in memory. Frame count is enforced the same
// way real containers do.
type Container struct {
	sync.Mutex
	Extension string

	ErrCreate error
	ErrWrite  error
	ErrClose  error

	files map[string]*File
}

// File is an in-memory container file.
type File struct {
	Header  file.Header
	Payload []byte
	Writes  int
	Closed  bool
}

// Ext implements file.Container.
func (c *Container) Ext() string {
	return c.Extension
}

// Create implements file.Container.
func (c *Container) Create(path string, h file.Header) (file.Handle, error) {
	c.Lock()
	defer c.Unlock()
	if c.ErrCreate != nil {
		return nil, c.ErrCreate
	}
	if c.files == nil {
		c.files = make(map[string]*File)
	}
	f := &File{Header: h}
	c.files[path] = f
	return &containerHandle{
		c:     c,
		f:     f,
		tally: file.NewTally(path, h),
	}, nil
}

// File returns created file by path.
func (c *Container) File(path string) (*File, bool) {
	c.Lock()
	defer c.Unlock()
	f, ok := c.files[path]
	return f, ok
}

type containerHandle struct {
	c     *Container
	f     *File
	tally *file.Tally
}

func (h *containerHandle) WriteFrames(b []byte) error {
	h.c.Lock()
	defer h.c.Unlock()
	if h.c.ErrWrite != nil {
		return h.c.ErrWrite
	}
	if err := h.tally.Add(b); err != nil {
		return err
	}
	h.f.Payload = append(h.f.Payload, b...)
	h.f.Writes++
	return nil
}

func (h *containerHandle) Close() error {
	h.c.Lock()
	defer h.c.Unlock()
	if h.f.Closed {
		return errors.New("file closed twice")
	}
	h.f.Closed = true
	if h.c.ErrClose != nil {
		return h.c.ErrClose
	}
	return h.tally.Check()
}
