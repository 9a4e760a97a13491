package panel

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textpanel/color"
)

func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var calls []time.Duration
	orig := sleep
	sleep = func(d time.Duration) { calls = append(calls, d) }
	t.Cleanup(func() { sleep = orig })
	return &calls
}

func TestLoadingFrames(t *testing.T) {
	e := newEngine(t, 20)

	frames, err := e.LoadingFrames("Load", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Load\t█░░", "Load\t██░", "Load\t███"}, frames)

	frames, err = e.LoadingFrames("", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"█░", "██"}, frames)
}

func TestLoadingFramesInvalidTicks(t *testing.T) {
	e := newEngine(t, 20)

	_, err := e.LoadingFrames("x", 0)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = e.ColoredLoadingFrames("x", -1, "RED")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestColoredLoadingFrames(t *testing.T) {
	e := newEngine(t, 20)

	frames, err := e.ColoredLoadingFrames("Load", 3, "")
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, "Load\t|\x1b[32m█░░\x1b[0m| 33.33%", frames[0])
	assert.Equal(t, "Load\t|\x1b[32m███\x1b[0m| 100.00%", frames[2])

	frames, err = e.ColoredLoadingFrames("", 4, "cyan")
	require.NoError(t, err)
	assert.Equal(t, "|\x1b[36m██░░\x1b[0m| 50.00%", frames[1])

	_, err = e.ColoredLoadingFrames("x", 2, "PURPLE")
	assert.ErrorIs(t, err, color.ErrUnknownColor)
}

func TestPlayFrames(t *testing.T) {
	calls := stubSleep(t)

	var buf bytes.Buffer
	err := PlayFrames(&buf, []string{"a", "b", "c"}, 50*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, "\ra\rb\rc\n", buf.String())
	assert.Equal(t, []time.Duration{50 * time.Millisecond, 50 * time.Millisecond}, *calls)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestPlayFramesWriteError(t *testing.T) {
	stubSleep(t)
	assert.Error(t, PlayFrames(failingWriter{}, []string{"a"}, time.Millisecond))
}
