// Package stress exercises the allocator to create measurable memory
// pressure. Fragmentation runs against the C heap so the blocks live
// outside the Go runtime and their lifetime is exactly what the loop
// dictates.
package stress

/*
#include <stdlib.h>

// Keeps libc's NULL-on-failure contract. cgo's own C.malloc aborts the
// process on exhaustion instead of returning nil, and a failed stress
// allocation should be skipped, not fatal.
static void *raw_malloc(size_t size) { return malloc(size); }
*/
import "C"

import (
	"sync/atomic"
	"time"
	"unsafe"
)

const (
	// blockAlign matches a typical cache line so interleaved holes end
	// up at realistic boundaries.
	blockAlign = 64

	// touchLimit caps how much of each block gets written. Touching a
	// prefix is enough to force the pages in without turning the loop
	// into a memset benchmark.
	touchLimit = 1024

	// allocPace spreads the allocations out so the pattern resembles a
	// leaky workload rather than one burst.
	allocPace = time.Millisecond
)

// liveBlocks counts blocks allocated but not yet freed.
var liveBlocks atomic.Int64

// block is one manually managed allocation. raw is the address malloc
// returned, buf the aligned window handed to callers.
type block struct {
	raw unsafe.Pointer
	buf []byte
}

// allocBlock grabs size bytes from the C heap aligned to blockAlign.
// It over-allocates by one alignment unit and offsets into the region,
// since malloc only guarantees alignment for the largest scalar type.
func allocBlock(size int) *block {
	if size <= 0 {
		return nil
	}

	raw := C.raw_malloc(C.size_t(size + blockAlign))
	if raw == nil {
		return nil
	}

	offset := 0
	if rem := uintptr(raw) % blockAlign; rem != 0 {
		offset = blockAlign - int(rem)
	}
	aligned := unsafe.Add(raw, offset)

	liveBlocks.Add(1)
	return &block{
		raw: raw,
		buf: unsafe.Slice((*byte)(aligned), size),
	}
}

// free returns the block to the C heap. Safe to call twice.
func (b *block) free() {
	if b == nil || b.raw == nil {
		return
	}
	C.free(b.raw)
	b.raw = nil
	b.buf = nil
	liveBlocks.Add(-1)
}

// touch writes pattern over the first touchLimit bytes of the block.
func (b *block) touch(pattern byte) {
	n := len(b.buf)
	if n > touchLimit {
		n = touchLimit
	}
	for i := 0; i < n; i++ {
		b.buf[i] = pattern
	}
}

// InduceFragmentation allocates count blocks of sizeKB KiB each and
// frees every third one immediately, leaving a checkerboard of live
// blocks and holes in the C heap. Every surviving block is freed
// before returning, so the call raises pressure while it runs but
// leaks nothing. It always reports success: failed allocations are
// skipped and non-positive arguments make it a no-op.
func InduceFragmentation(count, sizeKB int) bool {
	if count <= 0 || sizeKB <= 0 {
		return true
	}
	size := sizeKB * 1024

	var working []*block
	for i := 0; i < count; i++ {
		if b := allocBlock(size); b != nil {
			b.touch(byte(i % 255))
			if i%3 == 0 {
				b.free()
			} else {
				working = append(working, b)
			}
		}
		if i%10 == 0 {
			time.Sleep(allocPace)
		}
	}

	for _, b := range working {
		b.free()
	}
	return true
}

// LiveBlocks reports how many blocks are currently allocated.
func LiveBlocks() int64 {
	return liveBlocks.Load()
}
