package testkit

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepClock(t *testing.T) {
	c := NewStepClock(Epoch, time.Second)
	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, Epoch.Add(time.Second), c.Now())

	c.Advance(time.Minute)
	assert.Equal(t, Epoch.Add(2*time.Second+time.Minute), c.Now())

	frozen := NewStepClock(Epoch, 0)
	assert.Equal(t, frozen.Now(), frozen.Now())
}

func TestNewKit(t *testing.T) {
	kit := NewKit(t)
	require.NotNil(t, kit.Console)
	require.NotNil(t, kit.Meter)
	assert.NoError(t, kit.Ctx.Err())
	assert.NoError(t, kit.Meter.Shutdown(context.Background()))
}

func TestNewTracer(t *testing.T) {
	tracer, recorder := NewTracer(t)
	_, span := tracer.Start(context.Background(), "op")
	span.End()
	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, "op", recorder.Ended()[0].Name())
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}

func TestWriteFile(t *testing.T) {
	dir := WriteFile(t, "config.yaml", "dlog:\n  version: 2.0.0\n")
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2.0.0")
}
