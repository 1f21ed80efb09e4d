// Package signal converts samples into their binary PCM representation:
//	- encode float64 samples as little-endian int16 or float32 frames
//	- duplicate a mono sample into every channel of a frame
//	- reinterpret encoded frames as interleaved ints for int-buffer encoders
package signal

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pipelined/synth"
)

const (
	// BitDepth16 is 16 bit depth.
	BitDepth16 = BitDepth(16)
	// BitDepth32 is 32 bit depth.
	BitDepth32 = BitDepth(32)
)

// BitDepth is a number of bits per encoded sample.
type BitDepth int

// Format is a binary representation of encoded samples.
type Format int

const (
	// Int16LE is 16-bit signed integer little-endian PCM.
	Int16LE Format = iota + 1
	// Float32LE is 32-bit IEEE float little-endian PCM.
	Float32LE
)

// Width returns number of bytes per sample.
func (f Format) Width() int {
	switch f {
	case Int16LE:
		return 2
	case Float32LE:
		return 4
	default:
		return 0
	}
}

// BitDepth returns number of bits per sample.
func (f Format) BitDepth() BitDepth {
	return BitDepth(f.Width() * 8)
}

// IsFloat returns true for floating point formats.
func (f Format) IsFloat() bool {
	return f == Float32LE
}

func (f Format) String() string {
	switch f {
	case Int16LE:
		return "int16"
	case Float32LE:
		return "float32"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat returns format by its name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "int16", "s16le":
		return Int16LE, nil
	case "float32", "f32le":
		return Float32LE, nil
	default:
		return 0, synth.InvalidParameter("format", name)
	}
}

// FormatOf returns format for sample width in bytes.
func FormatOf(sampleWidth int) (Format, error) {
	switch sampleWidth {
	case 2:
		return Int16LE, nil
	case 4:
		return Float32LE, nil
	default:
		return 0, synth.InvalidParameter("sample width", sampleWidth)
	}
}

// Policy defines how int encoding handles samples outside of int range.
type Policy int

const (
	// Saturate clamps out-of-range samples to the closest int value.
	Saturate Policy = iota
	// Strict fails with synth.ErrEncodingOverflow.
	Strict
)

func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "saturate"
}

// Encoder converts samples into frames. Every sample is written into all
// channels of its frame.
type Encoder struct {
	format      Format
	numChannels int
	policy      Policy
	frameSize   int
}

// NewEncoder returns new encoder.
func NewEncoder(format Format, numChannels int, policy Policy) (*Encoder, error) {
	if format.Width() == 0 {
		return nil, synth.InvalidParameter("format", format)
	}
	if numChannels <= 0 {
		return nil, synth.InvalidParameter("channels", numChannels)
	}
	return &Encoder{
		format:      format,
		numChannels: numChannels,
		policy:      policy,
		frameSize:   format.Width() * numChannels,
	}, nil
}

// Format returns encoder format.
func (e *Encoder) Format() Format {
	return e.format
}

// NumChannels returns number of channels in frame.
func (e *Encoder) NumChannels() int {
	return e.numChannels
}

// FrameSize returns number of bytes in a single frame.
func (e *Encoder) FrameSize() int {
	return e.frameSize
}

// Append encodes the sample and appends a frame to dst. If sample cannot
// be encoded, dst is returned unchanged along with error.
func (e *Encoder) Append(dst []byte, sample float64) ([]byte, error) {
	start := len(dst)
	switch e.format {
	case Int16LE:
		v, err := EncodeInt16(sample, e.policy)
		if err != nil {
			return dst, err
		}
		dst = grow(dst, e.frameSize)
		for c := 0; c < e.numChannels; c++ {
			binary.LittleEndian.PutUint16(dst[start+c*2:], uint16(v))
		}
	case Float32LE:
		bits := math.Float32bits(float32(sample))
		dst = grow(dst, e.frameSize)
		for c := 0; c < e.numChannels; c++ {
			binary.LittleEndian.PutUint32(dst[start+c*4:], bits)
		}
	}
	return dst, nil
}

// grow extends slice length by n bytes.
func grow(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b[:len(b)+n]
	}
	nb := make([]byte, len(b)+n, 2*cap(b)+n)
	copy(nb, b)
	return nb
}

// EncodeInt16 rounds sample half to even and converts it to int16.
// NaN cannot be encoded with any policy.
func EncodeInt16(sample float64, policy Policy) (int16, error) {
	if math.IsNaN(sample) {
		return 0, fmt.Errorf("%w: %v", synth.ErrEncodingOverflow, sample)
	}
	v := math.RoundToEven(sample)
	switch {
	case v > math.MaxInt16:
		if policy == Strict {
			return 0, fmt.Errorf("%w: %v exceeds %d", synth.ErrEncodingOverflow, sample, math.MaxInt16)
		}
		return math.MaxInt16, nil
	case v < math.MinInt16:
		if policy == Strict {
			return 0, fmt.Errorf("%w: %v exceeds %d", synth.ErrEncodingOverflow, sample, math.MinInt16)
		}
		return math.MinInt16, nil
	}
	return int16(v), nil
}

// DecodeInt16 decodes first little-endian int16 sample of b.
func DecodeInt16(b []byte) float64 {
	return float64(int16(binary.LittleEndian.Uint16(b)))
}

// DecodeFloat32 decodes first little-endian float32 sample of b.
func DecodeFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// InterInt is an interleaved int signal.
type InterInt struct {
	Data        []int
	NumChannels int
	BitDepth
}

// AsInterInt reinterprets encoded frames as interleaved ints. Float samples
// are represented by their IEEE bit patterns, so int-buffer encoders write
// exactly the same bytes back. Incomplete trailing sample is ignored.
func (f Format) AsInterInt(b []byte, numChannels int) InterInt {
	width := f.Width()
	if width == 0 {
		return InterInt{NumChannels: numChannels}
	}
	data := make([]int, len(b)/width)
	for i := range data {
		switch f {
		case Int16LE:
			data[i] = int(int16(binary.LittleEndian.Uint16(b[i*width:])))
		case Float32LE:
			data[i] = int(int32(binary.LittleEndian.Uint32(b[i*width:])))
		}
	}
	return InterInt{
		Data:        data,
		NumChannels: numChannels,
		BitDepth:    f.BitDepth(),
	}
}

// FramesOf returns number of frames in seconds of signal, rounded to the
// nearest frame.
func FramesOf(sampleRate int, seconds float64) int {
	return int(math.Round(float64(sampleRate) * seconds))
}

// DurationOf returns time duration of passed frames for this sample rate.
func DurationOf(sampleRate int, frames int64) time.Duration {
	return time.Duration(float64(frames) / float64(sampleRate) * float64(time.Second))
}
