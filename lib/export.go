// C-callable entry points for libmemcore, built with
//
//	go build -buildmode=c-shared -o libmemcore.so ./lib
//
// Strings returned by get_memory_stats_json are allocated on the C
// heap and owned by the caller, who must pass each one to free_string
// exactly once. Status results are 1 for success and 0 for failure.
// A panic never crosses the boundary; it degrades into the matching
// error payload or a 0 status.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"unsafe"

	"github.com/memheal/memcore/internal/memory"
	"github.com/memheal/memcore/internal/pagecache"
	"github.com/memheal/memcore/internal/stress"
)

var (
	collector = memory.NewCollector()
	releaser  = pagecache.NewReleaser()
)

// get_memory_stats_json returns the current memory snapshot as a
// null-terminated JSON string. The caller owns the buffer and must
// release it with free_string.
//
//export get_memory_stats_json
func get_memory_stats_json() (out *C.char) {
	defer func() {
		if recover() != nil {
			out = C.CString(errEncodePayload)
		}
	}()
	return C.CString(statsPayload(collector))
}

// release_memory_cache asks the OS to drop reclaimable cache.
//
//export release_memory_cache
func release_memory_cache() (status C.int) {
	defer func() {
		if recover() != nil {
			status = 0
		}
	}()
	return statusCode(releaser.Release(context.Background()))
}

// free_string releases a string previously returned by this library.
// Passing NULL is a no-op; passing the same pointer twice is not.
//
//export free_string
func free_string(s *C.char) {
	if s == nil {
		return
	}
	C.free(unsafe.Pointer(s))
}

// simulate_memory_fragmentation churns the C heap with count blocks of
// size_kb KiB each. Non-positive arguments succeed without allocating.
//
//export simulate_memory_fragmentation
func simulate_memory_fragmentation(count, sizeKB C.int) (status C.int) {
	defer func() {
		if recover() != nil {
			status = 0
		}
	}()
	return statusCode(stress.InduceFragmentation(int(count), int(sizeKB)))
}

// defragment_memory runs the placeholder compaction pass.
//
//export defragment_memory
func defragment_memory() (status C.int) {
	defer func() {
		if recover() != nil {
			status = 0
		}
	}()
	return statusCode(stress.Defragment())
}

func statusCode(ok bool) C.int {
	if ok {
		return 1
	}
	return 0
}

func main() {}
