package metric_test

import (
	"encoding/json"
	"expvar"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelined/synth/metric"
)

func TestSink(t *testing.T) {
	tests := []struct {
		description string
		sampleRate  int
		writes      []int // frames per write
		frameSize   int
		failed      []string
		expected    metric.Counters
	}{
		{
			description: "stereo float",
			sampleRate:  1000,
			writes:      []int{300, 300, 300, 100},
			frameSize:   8,
			expected: metric.Counters{
				Writes:   4,
				Frames:   1000,
				Bytes:    8000,
				Duration: time.Second,
				Failures: map[string]int64{},
			},
		},
		{
			description: "failed writes",
			sampleRate:  44100,
			writes:      []int{22050},
			frameSize:   2,
			failed:      []string{"write", "write", "close"},
			expected: metric.Counters{
				Writes:   1,
				Frames:   22050,
				Bytes:    44100,
				Duration: 500 * time.Millisecond,
				Failures: map[string]int64{"write": 2, "close": 1},
			},
		},
		{
			description: "nothing written",
			sampleRate:  8000,
			failed:      []string{"open"},
			expected: metric.Counters{
				Failures: map[string]int64{"open": 1},
			},
		},
	}
	for _, test := range tests {
		s := metric.Register("test", test.sampleRate)
		for _, frames := range test.writes {
			s.Wrote(frames, frames*test.frameSize)
		}
		for _, op := range test.failed {
			s.Failed(op)
		}
		assert.Equal(t, test.expected, s.Counters(), test.description)
	}
}

func TestRegisterUnique(t *testing.T) {
	a := metric.Register("stream", 44100)
	b := metric.Register("stream", 44100)
	assert.NotEqual(t, a.Name(), b.Name())

	a.Wrote(10, 20)
	assert.Equal(t, int64(10), a.Counters().Frames)
	assert.Equal(t, int64(0), b.Counters().Frames)

	found, ok := metric.Lookup(a.Name())
	require.True(t, ok)
	assert.Same(t, a, found)
	_, ok = metric.Lookup("stream.unknown")
	assert.False(t, ok)
}

func TestPublished(t *testing.T) {
	s := metric.Register("wav", 1000)
	s.Wrote(500, 1000)
	s.Failed("close")

	sinks := expvar.Get("synth.sinks").(*expvar.Map)
	v := sinks.Get(s.Name())
	require.NotNil(t, v)
	var published struct {
		Writes   int64            `json:"writes"`
		Frames   int64            `json:"frames"`
		Bytes    int64            `json:"bytes"`
		Duration string           `json:"duration"`
		Failures map[string]int64 `json:"failures"`
	}
	require.NoError(t, json.Unmarshal([]byte(v.String()), &published))
	assert.Equal(t, int64(1), published.Writes)
	assert.Equal(t, int64(500), published.Frames)
	assert.Equal(t, int64(1000), published.Bytes)
	assert.Equal(t, "500ms", published.Duration)
	assert.Equal(t, map[string]int64{"close": 1}, published.Failures)
}

func TestConcurrent(t *testing.T) {
	s := metric.Register("stream", 44100)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Wrote(1, 4)
				s.Failed("write")
			}
		}()
	}
	wg.Wait()
	c := s.Counters()
	assert.Equal(t, int64(400), c.Writes)
	assert.Equal(t, int64(1600), c.Bytes)
	assert.Equal(t, int64(400), c.Failures["write"])
}
