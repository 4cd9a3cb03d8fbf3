//go:build windows

// Windows has no termios or select(2); spec.md §4.1's platform branch calls
// for a polling reader instead once POSIX termios is detected unavailable.
// original_source/termutils.py falls back to msvcrt.kbhit()/getwch() for
// exactly this case. golang.org/x/sys/windows has no msvcrt binding, so
// this reproduces the same character-mode console read with the console
// API the teacher's own Windows backend uses for raw mode
// (terminal/internal/infrastructure/windows/console.go's EnterRawMode):
// SetConsoleMode with ENABLE_LINE_INPUT/ENABLE_ECHO_INPUT/
// ENABLE_PROCESSED_INPUT cleared and ENABLE_VIRTUAL_TERMINAL_INPUT left
// off, so ReadFile returns raw character-mode bytes one key at a time,
// with extended keys arriving as a leading 0xE0/0x00 scan-code byte
// followed by its code — the same two-byte burst the recorder's readBurst
// loop already drains in one pass.
package rawmode

import (
	"time"

	"golang.org/x/sys/windows"
)

const (
	enableProcessedInput = 0x0001
	enableLineInput      = 0x0002
	enableEchoInput      = 0x0004
)

// State is a snapshot of a console input handle's mode, used to restore it
// later.
type State struct {
	mode uint32
}

func stdinHandle() (windows.Handle, error) {
	return windows.GetStdHandle(windows.STD_INPUT_HANDLE)
}

// Get snapshots the current console input mode for fd without changing it.
// fd is ignored; Windows raw mode operates on the console input handle.
func Get(fd int) (*State, error) {
	h, err := stdinHandle()
	if err != nil {
		return nil, err
	}
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return nil, err
	}
	return &State{mode: mode}, nil
}

// SetRaw clears line buffering, echo, and Ctrl+C signal processing on the
// console input handle, matching msvcrt.getwch's character-at-a-time,
// no-echo semantics.
func SetRaw(fd int) error {
	h, err := stdinHandle()
	if err != nil {
		return err
	}
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return err
	}
	mode &^= enableLineInput | enableEchoInput | enableProcessedInput
	return windows.SetConsoleMode(h, mode)
}

// Restore applies a previously captured State back to the console input
// handle.
func Restore(fd int, s *State) error {
	if s == nil {
		return nil
	}
	h, err := stdinHandle()
	if err != nil {
		return err
	}
	return windows.SetConsoleMode(h, s.mode)
}

// WaitReadable polls the console input handle for a pending event,
// mirroring msvcrt.kbhit()'s busy loop (spec.md §5: "busy-wait with yield
// on platforms without termios") rather than blocking like POSIX select.
// A negative timeoutSeconds blocks indefinitely; a non-negative one bounds
// the poll and returns false on expiry.
func WaitReadable(fd int, timeoutSeconds float64) (bool, error) {
	h, err := stdinHandle()
	if err != nil {
		return false, err
	}

	var deadline time.Time
	bounded := timeoutSeconds >= 0
	if bounded {
		deadline = time.Now().Add(time.Duration(timeoutSeconds * float64(time.Second)))
	}

	for {
		var n uint32
		if err := windows.GetNumberOfConsoleInputEvents(h, &n); err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
		if bounded && time.Now().After(deadline) {
			return false, nil
		}
		time.Sleep(time.Millisecond)
	}
}
