package main

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/pipelined/synth/aiff"
	"github.com/pipelined/synth/file"
	"github.com/pipelined/synth/mp3"
	"github.com/pipelined/synth/signal"
	"github.com/pipelined/synth/wav"
)

// defaultAmplitude keeps 16 bit samples below the int16 limit.
const defaultAmplitude = 32000

type writeCommand struct {
	oscillatorFlags
	out         string
	container   string
	numChannels int
	sampleWidth int
	frames      int
	seconds     float64
	strict      bool
	bitRate     int
	quality     int

	containers map[string]file.Container
	written    string
}

func newWriteCommand() *writeCommand {
	return &writeCommand{
		containers: map[string]file.Container{
			"wav":  wav.Container{},
			"aiff": aiff.Container{},
			"mp3":  mp3.New(),
		},
	}
}

//Implement command interface
func (cmd *writeCommand) Name() string {
	return "write"
}

func (cmd *writeCommand) Help() string {
	return "Write waveform into a file"
}

func (cmd *writeCommand) Register(fs *flag.FlagSet) {
	cmd.oscillatorFlags.register(fs, defaultAmplitude)
	fs.StringVar(&cmd.out, "out", "", "output file name, timestamp is used if empty")
	fs.StringVar(&cmd.container, "container", "wav", "container: "+strings.Join(cmd.names(), ", "))
	fs.IntVar(&cmd.numChannels, "channels", file.DefaultNumChannels, "number of channels")
	fs.IntVar(&cmd.sampleWidth, "width", file.DefaultSampleWidth, "bytes per sample: 2 for int16, 4 for float32")
	fs.IntVar(&cmd.frames, "frames", 2400, "number of frames to write")
	fs.Float64Var(&cmd.seconds, "seconds", 0, "length in seconds, overrides frames")
	fs.BoolVar(&cmd.strict, "strict", false, "fail on int16 overflow instead of saturation")
	fs.IntVar(&cmd.bitRate, "bitrate", mp3.DefaultBitRate, "mp3 bit rate in kbps")
	fs.IntVar(&cmd.quality, "quality", mp3.DefaultQuality, "mp3 quality from 0 (best) to 9 (worst)")
}

func (cmd *writeCommand) Run() error {
	c, err := cmd.selected()
	if err != nil {
		return err
	}
	src, err := cmd.signal()
	if err != nil {
		return err
	}
	policy := signal.Saturate
	if cmd.strict {
		policy = signal.Strict
	}
	w, err := file.New(c,
		file.WithNumChannels(cmd.numChannels),
		file.WithSampleWidth(cmd.sampleWidth),
		file.WithSampleRate(cmd.sampleRate),
		file.WithPolicy(policy),
	)
	if err != nil {
		return err
	}

	if cmd.seconds > 0 {
		cmd.written, err = w.WriteSeconds(context.Background(), src, cmd.out, cmd.seconds)
	} else {
		cmd.written, err = w.Write(context.Background(), src, cmd.out, cmd.frames)
	}
	return err
}

// selected returns container chosen by flags.
func (cmd *writeCommand) selected() (file.Container, error) {
	c, ok := cmd.containers[cmd.container]
	if !ok {
		return nil, fmt.Errorf("unknown container %q", cmd.container)
	}
	if m, ok := c.(mp3.Container); ok {
		m.BitRate = cmd.bitRate
		m.Quality = cmd.quality
		return m, nil
	}
	return c, nil
}

func (cmd *writeCommand) names() []string {
	names := make([]string, 0, len(cmd.containers))
	for name := range cmd.containers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
