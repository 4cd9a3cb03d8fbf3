package input

import (
	"sync"
	"weak"
)

// registry tracks every live Recorder without keeping it alive itself —
// weak.Pointer lets a Recorder that falls out of scope be collected without
// an explicit deregister call, mirroring the Python original's WeakSet.
// Recorder.End still clears its own active flag on the normal path; the
// weak registry is the backstop for recorders dropped without a clean End.
var (
	registryMu sync.Mutex
	registry   []weak.Pointer[Recorder]
)

func registerRecorder(r *Recorder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, weak.Make(r))
}

// anyOtherActive reports whether some live recorder other than self
// currently holds raw mode, pruning dead weak pointers as it goes.
func anyOtherActive(self *Recorder) bool {
	registryMu.Lock()
	defer registryMu.Unlock()

	alive := registry[:0]
	found := false
	for _, wp := range registry {
		rec := wp.Value()
		if rec == nil {
			continue
		}
		alive = append(alive, wp)
		if rec != self && rec.isActive() {
			found = true
		}
	}
	registry = alive
	return found
}
