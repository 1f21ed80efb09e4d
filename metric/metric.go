// Package metric publishes counters of every sink instance through expvar.
//
// All sinks live in a single expvar map "synth.sinks", one entry per sink:
//
//	{"stream.1": {"writes": 4, "frames": 1000, "bytes": 8000,
//	              "duration": "1s", "failures": {"write": 1}}}
package metric

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pipelined/synth/signal"
)

// Published counter names.
const (
	Writes   = "writes"
	Frames   = "frames"
	Bytes    = "bytes"
	Duration = "duration"
	Failures = "failures"
)

var (
	sinks = expvar.NewMap("synth.sinks")
	// registered sinks by name, expvar only keeps the vars.
	registry sync.Map
	seq      int64
)

// Sink counts what a single sink has written. It is safe for concurrent
// use.
type Sink struct {
	name       string
	sampleRate int

	writes   expvar.Int
	frames   expvar.Int
	bytes    expvar.Int
	failures expvar.Map
}

// Counters is a snapshot of sink counters.
type Counters struct {
	Writes   int64
	Frames   int64
	Bytes    int64
	Duration time.Duration
	Failures map[string]int64
}

// Register publishes a new sink with unique name derived from kind, for
// example "stream.3". Duration of written frames is computed with
// sampleRate.
func Register(kind string, sampleRate int) *Sink {
	s := &Sink{
		name:       fmt.Sprintf("%s.%d", kind, atomic.AddInt64(&seq, 1)),
		sampleRate: sampleRate,
	}
	s.failures.Init()

	vars := new(expvar.Map).Init()
	vars.Set(Writes, &s.writes)
	vars.Set(Frames, &s.frames)
	vars.Set(Bytes, &s.bytes)
	vars.Set(Duration, expvar.Func(func() interface{} {
		return s.duration().String()
	}))
	vars.Set(Failures, &s.failures)
	sinks.Set(s.name, vars)
	registry.Store(s.name, s)
	return s
}

// Lookup returns registered sink by name.
func Lookup(name string) (*Sink, bool) {
	s, ok := registry.Load(name)
	if !ok {
		return nil, false
	}
	return s.(*Sink), true
}

// Name returns published name of the sink.
func (s *Sink) Name() string {
	return s.name
}

// Wrote counts one successful write of frames encoded into n bytes.
func (s *Sink) Wrote(frames, n int) {
	s.writes.Add(1)
	s.frames.Add(int64(frames))
	s.bytes.Add(int64(n))
}

// Failed counts a failed operation, op is the same as in DeviceError and
// ContainerError.
func (s *Sink) Failed(op string) {
	s.failures.Add(op, 1)
}

// Counters returns current values.
func (s *Sink) Counters() Counters {
	c := Counters{
		Writes:   s.writes.Value(),
		Frames:   s.frames.Value(),
		Bytes:    s.bytes.Value(),
		Duration: s.duration(),
		Failures: make(map[string]int64),
	}
	s.failures.Do(func(kv expvar.KeyValue) {
		c.Failures[kv.Key] = kv.Value.(*expvar.Int).Value()
	})
	return c
}

func (s *Sink) duration() time.Duration {
	return signal.DurationOf(s.sampleRate, s.frames.Value())
}
