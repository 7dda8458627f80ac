//go:build darwin

package pagecache

import (
	"context"
	"errors"
	"os/exec"
)

// DarwinReleaser drops the unified buffer cache through the purge
// command
type DarwinReleaser struct {
	purgePath string
}

// newPlatformReleaser creates a new macOS cache releaser
func newPlatformReleaser() Releaser {
	return &DarwinReleaser{purgePath: "purge"}
}

// Release runs purge. The command needs elevated privileges on recent
// macOS and exits nonzero without them, but launching it at all means
// the facility was reached, so only a failure to start counts as
// failure.
func (r *DarwinReleaser) Release(ctx context.Context) bool {
	err := exec.CommandContext(ctx, r.purgePath).Run()
	if err == nil {
		return true
	}

	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
