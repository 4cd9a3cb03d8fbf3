package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grove-tui/grove/keysym"
)

func TestDecodeBurstValidUTF8(t *testing.T) {
	assert.Equal(t, "héllo", decodeBurst([]byte("héllo")))
}

func TestDecodeBurstFallsBackToLatin1(t *testing.T) {
	// 0xE0 alone is not valid UTF-8; legacy Windows scan codes use exactly
	// this kind of single high byte.
	got := decodeBurst([]byte{0xE0, 'K'})
	want := string([]rune{0xE0, 'K'})
	assert.Equal(t, want, got)
}

func TestBindAcceptsSymbolAndBindsEveryAlias(t *testing.T) {
	r := New()
	fired := 0
	r.Bind(keysym.ENTER, func() { fired++ })
	for _, alias := range keysym.ENTER.Aliases() {
		r.handle(alias)
	}
	assert.Equal(t, len(keysym.ENTER.Aliases()), fired)
}

func TestBindAcceptsRawString(t *testing.T) {
	r := New()
	fired := false
	r.Bind("q", func() { fired = true })
	r.handle("q")
	assert.True(t, fired)
}

func TestBindPanicsOnUnsupportedKeyType(t *testing.T) {
	r := New()
	assert.Panics(t, func() { r.Bind(42, func() {}) })
}

func TestSwitchHookWrapsModulo(t *testing.T) {
	var seen []int
	r := New(
		func(string) { seen = append(seen, 0) },
		func(string) { seen = append(seen, 1) },
		func(string) { seen = append(seen, 2) },
	)
	r.handle("x")
	r.SwitchHook(1)
	r.handle("x")
	r.SwitchHook(-2)
	r.handle("x")
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestCtrlDRescueFiresOnlyWhenUnbound(t *testing.T) {
	origExit := osExit
	defer func() { osExit = origExit }()

	var exitCode int
	exited := false
	osExit = func(code int) { exited = true; exitCode = code }

	r := New()
	r.handle(keysym.CTRL_D.Aliases()[0])
	require.True(t, exited, "unbound CTRL_D should trigger the rescue exit")
	assert.Equal(t, 1, exitCode)

	exited = false
	r2 := New()
	r2.Bind(keysym.CTRL_D, func() {})
	r2.handle(keysym.CTRL_D.Aliases()[0])
	assert.False(t, exited, "bound CTRL_D should not trigger the rescue exit")
}

func TestStartReturnsConflictWhenAnotherRecorderIsActive(t *testing.T) {
	r1 := New()
	r1.cooked.Store(false) // simulate r1 already holding raw mode, no real tty needed
	defer r1.cooked.Store(true)

	r2 := New()
	err := r2.Start(nil)

	require.True(t, errors.Is(err, ErrConflict), "expected Start to report ErrConflict while another recorder is active")
	assert.False(t, r1.Cooked(), "the first recorder's active state must be left untouched by the rejected Start")
	assert.True(t, r2.Cooked(), "the rejected recorder must never have entered raw mode")
}
