// Package input implements grove's InputRecorder: it owns the controlling
// tty's line discipline, decodes stdin bursts into logical key strings, and
// dispatches them through bindings and chained hooks.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/grove-tui/grove/internal/rawmode"
	"github.com/grove-tui/grove/keysym"
)

// Fatal error kinds per spec.md §7.
var (
	ErrConflict       = errors.New("input: another recorder already holds raw mode")
	ErrPiped          = errors.New("input: cannot read keyboard input from stdin when piped")
	ErrClosedStdin    = errors.New("input: stdin is closed")
	ErrRecorderActive = errors.New("input: recorder has not ended")
)

// osExit is indirected so tests can observe the CTRL_D rescue without
// killing the test binary.
var osExit = os.Exit

// Action is a parameter-less binding fired when its key matches.
type Action func()

// Hook receives every decoded key burst, after bindings have run.
type Hook func(burst string)

// Recorder owns the tty's line discipline and input decode/dispatch loop.
// The zero value is not usable; use New.
type Recorder struct {
	hooks    []Hook
	hookIdx  int
	bindings map[string][]Action

	cooked atomic.Bool

	stdin  *os.File
	stdout io.Writer

	fd    int
	saved *rawmode.State
}

// New creates a Recorder with the given hooks, in chained order. Hook 0 is
// active until SwitchHook moves to another.
func New(hooks ...Hook) *Recorder {
	r := &Recorder{
		hooks:    hooks,
		bindings: make(map[string][]Action),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
	}
	r.cooked.Store(true)
	registerRecorder(r)
	return r
}

func (r *Recorder) isActive() bool { return !r.cooked.Load() }

// Cooked reports whether the recorder currently holds the tty in its
// original (canonical, echoing) line discipline.
func (r *Recorder) Cooked() bool { return r.cooked.Load() }

// Bind associates action with every alias of key. key may be a
// keysym.Symbol (binds all its aliases) or a raw alias string. Multiple
// actions bound to the same alias all fire, in the order they were bound.
func (r *Recorder) Bind(key any, action Action) {
	switch k := key.(type) {
	case keysym.Symbol:
		for _, alias := range k.Aliases() {
			r.bindings[alias] = append(r.bindings[alias], action)
		}
	case string:
		r.bindings[k] = append(r.bindings[k], action)
	default:
		panic(fmt.Sprintf("input: Bind key must be keysym.Symbol or string, got %T", key))
	}
}

// SwitchHook advances the active hook by delta, modulo the hook count.
func (r *Recorder) SwitchHook(delta int) {
	if len(r.hooks) == 0 {
		return
	}
	r.hookIdx = ((r.hookIdx+delta)%len(r.hooks) + len(r.hooks)) % len(r.hooks)
}

// Start enters raw mode and runs the read loop until End is called. A
// non-nil timeout bounds each wait for input; its expiry returns normally
// rather than looping forever, letting a caller interleave other work.
// Start returns ErrConflict if another live Recorder already holds raw
// mode.
func (r *Recorder) Start(timeout *time.Duration) error {
	if anyOtherActive(r) {
		return ErrConflict
	}
	if err := r.newSettings(); err != nil {
		return err
	}
	defer r.End()
	return r.record(timeout)
}

func (r *Recorder) newSettings() error {
	fd := int(r.stdin.Fd())
	fi, err := r.stdin.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClosedStdin, err)
	}
	if fi.Mode()&os.ModeNamedPipe != 0 {
		return ErrPiped
	}
	saved, err := rawmode.Get(fd)
	if err != nil {
		return err
	}
	if err := rawmode.SetRaw(fd); err != nil {
		return err
	}
	r.saved = saved
	r.fd = fd
	r.cooked.Store(false)
	return nil
}

// record is the blocking read loop. Each iteration waits (bounded by
// timeout if given) for stdin to become readable, reads the whole buffered
// burst, decodes it, and dispatches it. Re-selecting every iteration
// (rather than once up front) avoids busy-waiting between reads while
// still honoring spec.md §5's "blocking select with optional timeout".
func (r *Recorder) record(timeout *time.Duration) error {
	for !r.cooked.Load() {
		secs := -1.0
		if timeout != nil {
			secs = timeout.Seconds()
		}
		ready, err := rawmode.WaitReadable(r.fd, secs)
		if err != nil {
			return err
		}
		if !ready {
			return nil
		}
		burst, err := r.readBurst()
		if err != nil {
			return err
		}
		if len(burst) == 0 {
			continue
		}
		r.handle(decodeBurst(burst))
	}
	return nil
}

// readBurst drains every byte currently buffered on stdin into one slice.
// Because the tty is VMIN=0/VTIME=0, each Read returns immediately with
// whatever is already queued; a short read signals nothing more is
// immediately available.
func (r *Recorder) readBurst() ([]byte, error) {
	var out []byte
	buf := make([]byte, 256)
	for {
		n, err := r.stdin.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		if n < len(buf) {
			return out, nil
		}
	}
}

// decodeBurst decodes raw bytes as UTF-8, falling back to ISO-8859-1 (a
// direct byte-to-rune mapping, since Latin-1 code points equal their
// Unicode code points) when the burst is not valid UTF-8.
func decodeBurst(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

// handle runs bindings for key, then — unless key is the unbound CTRL_D
// rescue — the active hook.
func (r *Recorder) handle(key string) {
	actions := r.bindings[key]
	for _, a := range actions {
		a()
	}
	if keysym.CTRL_D.Is(key) && len(actions) == 0 {
		r.End()
		osExit(1)
		return
	}
	if len(r.hooks) > 0 {
		r.hooks[r.hookIdx](key)
	}
}

// End restores the tty's original line discipline. Input still pending on
// stdin is not flushed. Safe to call more than once.
func (r *Recorder) End() {
	if r.cooked.Load() {
		return
	}
	_ = rawmode.Restore(r.fd, r.saved)
	r.cooked.Store(true)
}

// Input reads a line of input outside the recorder's own loop. With
// maxChars nil, it ends raw mode and delegates to the host's canonical
// line reader (like Python's builtin input()). With maxChars set, it
// switches stdin to non-canonical mode only for this call, writes prompt,
// and reads maxChars bytes; a multi-byte UTF-8 character counts as
// several of them.
func (r *Recorder) Input(prompt string, maxChars *int) (string, error) {
	if maxChars == nil {
		r.End()
		fmt.Fprint(r.stdout, prompt)
		reader := bufio.NewReader(r.stdin)
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if err != nil && errors.Is(err, io.EOF) && line != "" {
			err = nil
		}
		return line, err
	}

	fd := int(r.stdin.Fd())
	saved, err := rawmode.Get(fd)
	if err != nil {
		return "", err
	}
	if err := rawmode.SetRaw(fd); err != nil {
		return "", err
	}
	defer func() { _ = rawmode.Restore(fd, saved) }()

	fmt.Fprint(r.stdout, prompt)
	if f, ok := r.stdout.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}

	buf := make([]byte, *maxChars)
	n, err := io.ReadFull(r.stdin, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return string(buf[:n]), err
	}
	return string(buf[:n]), nil
}

// ReadN reads n bytes from stdin in a temporary non-canonical mode,
// independent of any Recorder, writing prompt first; a multi-byte UTF-8
// character counts as several of the n. It mirrors the
// original term_app_pack's module-level instant_input helper.
func ReadN(prompt string, n int) (string, error) {
	fd := int(os.Stdin.Fd())
	saved, err := rawmode.Get(fd)
	if err != nil {
		// Not a tty (e.g. piped input in tests) — fall back to a plain read.
		fmt.Fprint(os.Stdout, prompt)
		buf := make([]byte, n)
		rn, rerr := io.ReadFull(os.Stdin, buf)
		return string(buf[:rn]), rerr
	}
	if err := rawmode.SetRaw(fd); err != nil {
		return "", err
	}
	defer func() { _ = rawmode.Restore(fd, saved) }()

	fmt.Fprint(os.Stdout, prompt)
	buf := make([]byte, n)
	rn, err := io.ReadFull(os.Stdin, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return string(buf[:rn]), err
	}
	return string(buf[:rn]), nil
}
