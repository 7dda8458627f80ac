package memory

import (
	"context"
	"time"
)

// Stats is a point-in-time snapshot of physical memory usage. All counts
// are bytes. Buffers and Cached describe the OS page-cache categories and
// are only reported by platforms that expose them; elsewhere they are nil
// and serialize as JSON null. A Stats value is never mutated after
// construction: every snapshot produces a fresh instance.
type Stats struct {
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	Available   uint64  `json:"available"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"used_percent"`
	Buffers     *uint64 `json:"buffers"`
	Cached      *uint64 `json:"cached"`
	Timestamp   string  `json:"timestamp"`
}

// Collector interface for memory snapshots
type Collector interface {
	// Snapshot returns current memory statistics. It never fails: fields an
	// OS source could not supply degrade to zero or absent instead.
	Snapshot(ctx context.Context) *Stats
}

// NewCollector creates a new memory collector for the current platform
func NewCollector() Collector {
	return newPlatformCollector()
}

// TimestampFormat is ISO-8601 with millisecond precision and a UTC "Z"
// suffix, the format every snapshot timestamp is rendered in.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

func timestamp() string {
	return time.Now().UTC().Format(TimestampFormat)
}

// zeroStats is the snapshot used when no backend can supply data: all
// counts zero, no page-cache categories, valid capture time.
func zeroStats() *Stats {
	return &Stats{Timestamp: timestamp()}
}

// usedPercent computes used/total*100 clamped to [0,100]. A zero total
// yields 0 rather than NaN.
func usedPercent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(used) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// safeSub subtracts b from a, clamping at 0 instead of wrapping. Memory
// accounting from misreporting hosts can otherwise drive used counts past
// total.
func safeSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
