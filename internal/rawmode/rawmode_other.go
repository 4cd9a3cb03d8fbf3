//go:build !unix && !windows

package rawmode

import "errors"

// State is a no-op placeholder on platforms without POSIX termios.
type State struct{}

var errUnsupported = errors.New("rawmode: not supported on this platform")

func Get(fd int) (*State, error) { return nil, errUnsupported }

func SetRaw(fd int) error { return errUnsupported }

func Restore(fd int, s *State) error { return nil }

func WaitReadable(fd int, timeoutSeconds float64) (bool, error) {
	return false, errUnsupported
}
