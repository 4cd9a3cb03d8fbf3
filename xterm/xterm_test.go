package xterm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grove-tui/grove/input"
)

func TestWriteIsNoopOutsideApplicationContext(t *testing.T) {
	var buf strings.Builder
	app := NewApp(NewConfig(), &buf)
	app.Write("hello")
	assert.Equal(t, 0, buf.Len())
}

func TestOpenWritesBaselineThenDECSET1(t *testing.T) {
	var buf strings.Builder
	app := NewApp(NewConfig(), &buf)
	app.Open()
	got := buf.String()
	assert.True(t, strings.HasPrefix(got, baselineReset+"\x1b[?1h"), "Open() output = %q", got)
	assert.True(t, app.InApplicationContext())
}

func TestOpenHonorsConfigOptions(t *testing.T) {
	var buf strings.Builder
	app := NewApp(NewConfig(WithAlternateBuffer(), WithHiddenCursor()), &buf)
	app.Open()
	got := buf.String()
	for _, want := range []string{"\x1b[?1049h", "\x1b[?25l"} {
		assert.Contains(t, got, want)
	}
}

func TestCloseLeavesApplicationContext(t *testing.T) {
	var buf strings.Builder
	app := NewApp(NewConfig(), &buf)
	app.Open()
	app.Close()
	assert.False(t, app.InApplicationContext())
	assert.True(t, app.Recorder().Cooked())
}

func TestSetRecorderAcceptsAFreshCookedRecorder(t *testing.T) {
	var buf strings.Builder
	app := NewApp(NewConfig(), &buf)
	replacement := input.New()
	require.NoError(t, app.SetRecorder(replacement))
	assert.Same(t, replacement, app.Recorder())
}

func TestSetRecorderRejectsARecorderThatHasNotEnded(t *testing.T) {
	var buf strings.Builder
	app := NewApp(NewConfig(), &buf)
	active := &input.Recorder{} // zero value: Cooked() == false, as if mid-session
	app.recorder = active

	err := app.SetRecorder(input.New())

	assert.ErrorIs(t, err, input.ErrRecorderActive)
	assert.Same(t, active, app.Recorder(), "rejected SetRecorder must leave the active recorder in place")
}
