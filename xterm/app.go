// Package xterm provides the base application type that reference grove
// apps embed: it owns an input.Recorder, negotiates the xterm DEC private
// modes a Config asks for, and context-protects rendering methods so they
// are no-ops outside an open application.
package xterm

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/grove-tui/grove/input"
	"golang.org/x/term"
)

// baselineReset is written at the start of Open and again (without the
// immediately-following ?1h) at Close, returning every mode this package
// ever sets to the terminal's out-of-the-box state before anything else
// runs. ?1l is reset here and then, during Open only, immediately set again
// by the ?1h below — preserved verbatim from the reference implementation,
// which relies on DECCKM being freshly toggled rather than left alone.
const baselineReset = "\x1b[?7h\x1b[?25h\x1b[?1005l\x1b[?1006l\x1b[?1015l\x1b[?1003l\x1b[?1l"

// App is the base type for a grove terminal application. Construct one with
// NewApp, Open it (or use Run, which pairs Open/Close around a callback),
// and use Write/Flush/Termsize from inside that scope.
type App struct {
	recorder *input.Recorder
	config   Config
	target   io.Writer

	inApp bool

	termsizeOnce sync.Once
	termsizeW    int
	termsizeH    int
}

// NewApp constructs an App, wiring recorderHooks into a new input.Recorder.
// target defaults to os.Stdout when nil.
func NewApp(config Config, target io.Writer, recorderHooks ...input.Hook) *App {
	if target == nil {
		target = os.Stdout
	}
	return &App{
		recorder: input.New(recorderHooks...),
		config:   config,
		target:   target,
	}
}

// Recorder returns the App's current input.Recorder.
func (a *App) Recorder() *input.Recorder { return a.recorder }

// SetRecorder replaces the App's recorder. It returns ErrRecorderActive (via
// input.ErrRecorderActive) if the current recorder has not ended.
func (a *App) SetRecorder(r *input.Recorder) error {
	if !a.recorder.Cooked() {
		return input.ErrRecorderActive
	}
	a.recorder = r
	return nil
}

// InApplicationContext reports whether Open has run without a matching
// Close — guarded methods like Write and Flush no-op outside this scope.
func (a *App) InApplicationContext() bool { return a.inApp }

// Termsize returns the terminal's current column and row count, queried
// once and cached for the lifetime of the App.
func (a *App) Termsize() (width, height int) {
	a.termsizeOnce.Do(func() {
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			w, h = 80, 24
		}
		a.termsizeW, a.termsizeH = w, h
	})
	return a.termsizeW, a.termsizeH
}

// Write is a context-protected passthrough to the underlying target; it is
// a no-op outside an Open/Close scope.
func (a *App) Write(s string) {
	if !a.inApp {
		return
	}
	io.WriteString(a.target, s)
}

// Flush is a context-protected flush of the underlying target, when it
// supports one.
func (a *App) Flush() {
	if !a.inApp {
		return
	}
	if f, ok := a.target.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
	if f, ok := a.target.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}
}

// Open negotiates every DEC private mode the Config asks for and marks the
// App as in-context. It is idempotent only in the sense that calling it
// twice re-sends the sequences; callers should pair it with exactly one
// Close.
func (a *App) Open() {
	io.WriteString(a.target, baselineReset)
	io.WriteString(a.target, "\x1b[?1h")

	c := a.config
	if c.alternateBuffer {
		io.WriteString(a.target, "\x1b[?1049h")
	}
	if c.utf8Mouse {
		io.WriteString(a.target, "\x1b[?1005h")
	}
	if c.sgrMouse {
		io.WriteString(a.target, "\x1b[?1006h")
	}
	if c.alternateScroll {
		io.WriteString(a.target, "\x1b[?1007h")
	}
	if c.urxvtMouse {
		io.WriteString(a.target, "\x1b[?1015h")
	}
	if !c.autoWrap {
		io.WriteString(a.target, "\x1b[?7l")
	}
	if c.hideCursor {
		io.WriteString(a.target, "\x1b[?25l")
	}
	if c.scrollRegion != nil {
		io.WriteString(a.target, fmt.Sprintf("\x1b[%d;%dr", c.scrollRegion.top, c.scrollRegion.bottom))
	}
	if !c.smoothScroll {
		io.WriteString(a.target, "\x1b[?4l")
	}
	if c.fastScroll {
		io.WriteString(a.target, "\x1b[?1014h")
	}
	if c.metaKey {
		io.WriteString(a.target, "\x1b[?1034h")
	}
	if c.altNumlock {
		io.WriteString(a.target, "\x1b[?1035h")
	}
	if c.mouseEvents {
		io.WriteString(a.target, "\x1b[?1003h")
	}

	a.inApp = true
	a.Flush()
}

// restoreDefaults reverts every mode Open may have set: the baseline reset
// first, then the inverse of each non-baseline toggle the Config enabled.
func (a *App) restoreDefaults() {
	io.WriteString(a.target, baselineReset)

	c := a.config
	if c.alternateScroll {
		io.WriteString(a.target, "\x1b[?1007l")
	}
	if c.scrollRegion != nil {
		io.WriteString(a.target, "\x1b[;r")
	}
	if !c.smoothScroll {
		io.WriteString(a.target, "\x1b[?4h")
	}
	if c.fastScroll {
		io.WriteString(a.target, "\x1b[?1014l")
	}
	if c.metaKey {
		io.WriteString(a.target, "\x1b[?1034l")
	}
	if c.altNumlock {
		io.WriteString(a.target, "\x1b[?1035l")
	}
	if c.alternateBuffer {
		io.WriteString(a.target, "\x1b[?1049l")
	}
}

// Close ends the recorder, leaves the application context, reverts every
// mode Open negotiated, and resets the tty line discipline with `stty
// sane` as a last-resort backstop in case the recorder's own restore
// failed.
func (a *App) Close() {
	a.recorder.End()
	a.inApp = false
	a.restoreDefaults()
	cmd := exec.Command("stty", "sane")
	cmd.Stdin = os.Stdin
	_ = cmd.Run()
}

// Run opens the application, invokes fn, and guarantees Close runs even if
// fn panics — mirroring the reference implementation's context-manager
// __enter__/__exit__ pairing, including swallowing the panic when it
// unwraps to one of safeExceptions-equivalent conditions is left to fn.
func (a *App) Run(fn func(*App)) {
	a.Open()
	defer a.Close()
	fn(a)
}
