package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/pipelined/synth/oto"
	"github.com/pipelined/synth/portaudio"
	sig "github.com/pipelined/synth/signal"
	"github.com/pipelined/synth/stream"
)

type playCommand struct {
	oscillatorFlags
	duration    float64
	numChannels int
	format      string
	backend     string
	bufferSize  int

	devices map[string]stream.Device
}

func newPlayCommand() *playCommand {
	return &playCommand{
		devices: map[string]stream.Device{
			"oto":       oto.Device{},
			"portaudio": portaudio.Device{},
		},
	}
}

//Implement command interface
func (cmd *playCommand) Name() string {
	return "play"
}

func (cmd *playCommand) Help() string {
	return "Play waveform on audio device"
}

func (cmd *playCommand) Register(fs *flag.FlagSet) {
	cmd.oscillatorFlags.register(fs, 0.5)
	fs.Float64Var(&cmd.duration, "duration", 1, "duration in seconds")
	fs.IntVar(&cmd.numChannels, "channels", 2, "number of channels")
	fs.StringVar(&cmd.format, "format", sig.Float32LE.String(), "sample format: float32 or int16")
	fs.StringVar(&cmd.backend, "backend", "oto", "audio backend: "+strings.Join(cmd.backends(), ", "))
	fs.IntVar(&cmd.bufferSize, "buffer", stream.DefaultBufferSize, "frames per device write")
}

func (cmd *playCommand) Run() error {
	device, ok := cmd.devices[cmd.backend]
	if !ok {
		return fmt.Errorf("unknown backend %q", cmd.backend)
	}
	format, err := sig.ParseFormat(cmd.format)
	if err != nil {
		return err
	}
	src, err := cmd.signal()
	if err != nil {
		return err
	}
	w, err := stream.New(device, cmd.sampleRate, cmd.numChannels,
		stream.WithFormat(format),
		stream.WithBufferSize(cmd.bufferSize),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return w.Play(ctx, src, cmd.duration)
}

func (cmd *playCommand) backends() []string {
	names := make([]string, 0, len(cmd.devices))
	for name := range cmd.devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
