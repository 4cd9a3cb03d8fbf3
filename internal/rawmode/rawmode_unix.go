//go:build unix

// Package rawmode puts the controlling tty into the non-canonical,
// non-echoing, zero-timeout mode grove's input recorder needs, and restores
// whatever was there before. It is deliberately narrower than
// golang.org/x/term's MakeRaw: that sets VMIN=1 (block for at least one
// byte), but spec.md's read loop wants VMIN=0/VTIME=0 so a burst read
// returns immediately with whatever is already buffered, with waiting done
// separately via select(2).
package rawmode

import (
	"golang.org/x/sys/unix"
)

// State is an opaque snapshot of a file descriptor's termios, used to
// restore it later.
type State struct {
	termios unix.Termios
}

// Get snapshots the current termios for fd without changing it.
func Get(fd int) (*State, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}
	return &State{termios: *t}, nil
}

// SetRaw puts fd into non-canonical, non-echo mode with VMIN=0, VTIME=0: a
// Read call returns immediately with whatever bytes are already available,
// even if that is zero bytes.
func SetRaw(fd int) error {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	t.Lflag &^= unix.ECHO | unix.ICANON
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(fd, ioctlSetTermios, t)
}

// Restore applies a previously captured State back to fd.
func Restore(fd int, s *State) error {
	if s == nil {
		return nil
	}
	t := s.termios
	return unix.IoctlSetTermios(fd, ioctlSetTermios, &t)
}

// WaitReadable blocks until fd has data to read or timeoutSeconds elapses.
// A negative timeout blocks indefinitely. Returns true if fd became
// readable, false on timeout.
func WaitReadable(fd int, timeoutSeconds float64) (bool, error) {
	var fdSet unix.FdSet
	fdSet.Set(fd)

	var timeout *unix.Timeval
	if timeoutSeconds >= 0 {
		sec := int64(timeoutSeconds)
		usec := int64((timeoutSeconds - float64(sec)) * 1e6)
		timeout = &unix.Timeval{Sec: sec, Usec: usec}
	}

	n, err := unix.Select(fd+1, &fdSet, nil, nil, timeout)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
