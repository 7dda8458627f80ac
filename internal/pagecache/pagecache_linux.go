//go:build linux

package pagecache

import (
	"context"
	"errors"
	"os"
	"os/exec"
)

const dropCachesFile = "/proc/sys/vm/drop_caches"

// LinuxReleaser drops page cache, dentries and inodes through the
// drop_caches sysctl
type LinuxReleaser struct {
	syncPath       string
	dropCachesPath string
}

// newPlatformReleaser creates a new Linux cache releaser
func newPlatformReleaser() Releaser {
	return &LinuxReleaser{syncPath: "sync", dropCachesPath: dropCachesFile}
}

// Release flushes dirty pages with sync, then writes "3" to
// drop_caches to free page cache plus slab objects. The sync leg
// counts once the command launches, exit status aside, same as purge
// on macOS. Writing needs root, so either step succeeding alone still
// counts: sync without the write flushed something, and the write
// without sync still dropped clean pages.
func (r *LinuxReleaser) Release(ctx context.Context) bool {
	err := exec.CommandContext(ctx, r.syncPath).Run()
	var exitErr *exec.ExitError
	syncOK := err == nil || errors.As(err, &exitErr)

	dropOK := os.WriteFile(r.dropCachesPath, []byte("3"), 0644) == nil
	return syncOK || dropOK
}
