package stress

import "time"

// defragDelay is how long Defragment pretends to work.
const defragDelay = 500 * time.Millisecond

// Defragment is a placeholder. User space cannot compact the C heap
// because the allocator never moves live blocks, so the call waits out
// a fixed delay and reports success. It exists to keep the control
// surface stable for callers that already schedule defragmentation.
func Defragment() bool {
	time.Sleep(defragDelay)
	return true
}
