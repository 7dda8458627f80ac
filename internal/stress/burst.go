package stress

import (
	"runtime"
	"time"
)

// usageBlockSize is one MiB, the granularity callers request bursts in.
const usageBlockSize = 1 << 20

// usagePageSize spaces the per-block writes so every 4 KiB page of a
// burst gets faulted in.
const usagePageSize = 4096

// usageHold is how long a burst keeps its memory before dropping it.
// Variable so tests do not have to sit through the full hold.
var usageHold = 5 * time.Second

// SimulateUsage allocates roughly usageMB MiB on the Go heap, touches
// every page of it, holds it for a few seconds and then lets it go,
// reporting success. The per-page writes commit the memory, so the
// burst shows up in OS level counters, not just in the runtime's own
// accounting.
func SimulateUsage(usageMB int) bool {
	if usageMB <= 0 {
		return true
	}

	held := make([][]byte, 0, usageMB)
	for i := 0; i < usageMB; i++ {
		buf := make([]byte, usageBlockSize)
		// Fresh spans come from the OS zero-on-demand, so each page
		// needs one write before it counts as resident.
		for off := 0; off < len(buf); off += usagePageSize {
			buf[off] = 1
		}
		held = append(held, buf)
	}

	time.Sleep(usageHold)
	runtime.KeepAlive(held)
	return true
}
