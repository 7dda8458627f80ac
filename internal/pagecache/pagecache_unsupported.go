//go:build !linux && !darwin && !windows

package pagecache

import "context"

// UnsupportedReleaser is a fallback for platforms without a cache
// release facility
type UnsupportedReleaser struct{}

// newPlatformReleaser creates a fallback releaser for unsupported platforms
func newPlatformReleaser() Releaser {
	return &UnsupportedReleaser{}
}

// Release reports failure because there is nothing to invoke.
func (r *UnsupportedReleaser) Release(ctx context.Context) bool {
	return false
}
