//go:build darwin

package memory

import (
	"bufio"
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// Page counts from vm_stat are converted with this fixed size, not the
// kernel's own page size (16 KiB on Apple silicon).
const vmStatPageSize = 4096

// DarwinCollector builds snapshots from sysctl and vm_stat output
type DarwinCollector struct {
	sysctlPath string
	vmStatPath string
}

// newPlatformCollector creates a new macOS memory collector
func newPlatformCollector() Collector {
	return &DarwinCollector{sysctlPath: "sysctl", vmStatPath: "vm_stat"}
}

type vmStatPages struct {
	free        uint64
	active      uint64
	inactive    uint64
	speculative uint64
}

// Snapshot shells out to sysctl for the physical memory size and to
// vm_stat for page counts. Either command failing leaves its half of
// the snapshot at zero.
func (c *DarwinCollector) Snapshot(ctx context.Context) *Stats {
	var total uint64
	if out, err := exec.CommandContext(ctx, c.sysctlPath, "-n", "hw.memsize").Output(); err == nil {
		total, _ = strconv.ParseUint(strings.TrimSpace(string(out)), 10, 64)
	}

	var pages vmStatPages
	if out, err := exec.CommandContext(ctx, c.vmStatPath).Output(); err == nil {
		pages = parseVMStat(string(out))
	}

	free := pages.free * vmStatPageSize
	// Inactive pages are reclaimable, so they count as available even
	// though vm_stat does not list them as free.
	available := (pages.free + pages.inactive) * vmStatPageSize
	used := safeSub(total, available)

	return &Stats{
		Total:       total,
		Free:        free,
		Available:   available,
		Used:        used,
		UsedPercent: usedPercent(used, total),
		Timestamp:   timestamp(),
	}
}

// parseVMStat pulls page counts out of vm_stat's "name: count." lines.
func parseVMStat(out string) vmStatPages {
	var pages vmStatPages
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		key, rest, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}

		value, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimSpace(rest), "."), 10, 64)
		if err != nil {
			continue
		}

		switch strings.TrimSpace(key) {
		case "Pages free":
			pages.free = value
		case "Pages active":
			pages.active = value
		case "Pages inactive":
			pages.inactive = value
		case "Pages speculative":
			pages.speculative = value
		}
	}
	return pages
}
