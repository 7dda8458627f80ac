// Package pagecache asks the operating system to drop reclaimable
// file cache. Every platform exposes the same best-effort contract: a
// release either reaches the OS facility or it does not, and partial
// success counts as success because the freed amount is unknowable
// anyway.
package pagecache

import "context"

// Releaser interface for dropping OS file cache
type Releaser interface {
	// Release asks the OS to drop cached pages. It reports whether the
	// request reached the platform facility, not how much was freed.
	Release(ctx context.Context) bool
}

// NewReleaser creates a cache releaser for the current platform
func NewReleaser() Releaser {
	return newPlatformReleaser()
}
