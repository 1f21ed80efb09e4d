package log_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/pipelined/synth/log"
)

func TestGetLogger(t *testing.T) {
	l := log.GetLogger()
	assert.NotNil(t, l)
	var _ log.Logger = l
}

func TestWithID(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	log.WithID(l, "c1").Info("started")
	assert.Contains(t, buf.String(), "id=c1")
	assert.Contains(t, buf.String(), "started")

	d := log.Discard()
	assert.Equal(t, d, log.WithID(d, "c2"))
	d.Info("dropped")
}
