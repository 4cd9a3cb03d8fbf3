//go:build unix

package rawmode

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitReadableTimesOutOnIdlePipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	ready, err := WaitReadable(int(r.Fd()), 0.05)
	require.NoError(t, err)
	require.False(t, ready, "expected WaitReadable to time out on an idle pipe")
}

func TestWaitReadableReportsDataReady(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	done := make(chan struct{})
	go func() {
		time.Sleep(10 * time.Millisecond)
		w.Write([]byte("x"))
		close(done)
	}()

	ready, err := WaitReadable(int(r.Fd()), 1.0)
	require.NoError(t, err)
	require.True(t, ready, "expected WaitReadable to report the pipe readable once written to")
	<-done
}
