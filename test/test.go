// Package test contains helper functions useful for testing synth packages.
package test

import (
	"path/filepath"
)

// All test outputs should be listed here so they could be accessible in all test packages.
var (
	testdata = "../_testdata/"
	out      = "out/"

	// List of all outputs to avoid collision.
	Out = struct {
		Sine     string
		Frames   string
		Float    string
		Mismatch string
		Aiff     string
		Mp3      string
	}{
		Sine:     resolvePath(testdata + out + "sine.wav"),
		Frames:   resolvePath(testdata + out + "frames.wav"),
		Float:    resolvePath(testdata + out + "float.wav"),
		Mismatch: resolvePath(testdata + out + "mismatch.wav"),
		Aiff:     resolvePath(testdata + out + "sine.aiff"),
		Mp3:      resolvePath(testdata + out + "sine.mp3"),
	}
)

func resolvePath(path string) string {
	result, _ := filepath.Abs(path)
	return result
}
