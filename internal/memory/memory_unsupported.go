//go:build !linux && !darwin && !windows

package memory

import "context"

// UnsupportedCollector is a fallback for platforms without a native
// memory source
type UnsupportedCollector struct{}

// newPlatformCollector creates a fallback collector for unsupported platforms
func newPlatformCollector() Collector {
	return &UnsupportedCollector{}
}

// Snapshot returns zeroed statistics with a current timestamp.
func (c *UnsupportedCollector) Snapshot(ctx context.Context) *Stats {
	return zeroStats()
}
