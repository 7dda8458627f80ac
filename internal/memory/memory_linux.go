//go:build linux

package memory

import (
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"
)

const procMeminfo = "/proc/meminfo"

// LinuxCollector builds snapshots from /proc/meminfo
type LinuxCollector struct {
	meminfoPath string
}

// newPlatformCollector creates a new Linux memory collector
func newPlatformCollector() Collector {
	return &LinuxCollector{meminfoPath: procMeminfo}
}

// Snapshot returns memory statistics parsed from /proc/meminfo. An
// unreadable file leaves every count at zero; individual missing keys
// default to zero as well.
func (c *LinuxCollector) Snapshot(ctx context.Context) *Stats {
	mem := make(map[string]uint64)
	if f, err := os.Open(c.meminfoPath); err == nil {
		parseMeminfo(f, mem)
		f.Close()
	}

	total := mem["MemTotal"]
	free := mem["MemFree"]
	available, ok := mem["MemAvailable"]
	if !ok {
		// Old kernels do not report MemAvailable
		available = free
	}

	var buffers, cached *uint64
	if v, ok := mem["Buffers"]; ok {
		buffers = &v
	}
	if v, ok := mem["Cached"]; ok {
		cached = &v
	}

	// Subtractions clamp at zero: a misreporting host can put
	// free+buffers+cached past total, and a wrapped used count would
	// poison every derived field.
	used := safeSub(total, free)
	if buffers != nil && cached != nil {
		used = safeSub(used, *buffers+*cached)
	}

	return &Stats{
		Total:       total,
		Free:        free,
		Available:   available,
		Used:        used,
		UsedPercent: usedPercent(used, total),
		Buffers:     buffers,
		Cached:      cached,
		Timestamp:   timestamp(),
	}
}

// parseMeminfo reads "key: value [unit]" lines into mem. Kibibyte values
// are converted to bytes, unitless values are taken verbatim, and lines
// that do not parse are skipped.
func parseMeminfo(r io.Reader, mem map[string]uint64) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, rest, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}

		value, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		if len(fields) > 1 && strings.EqualFold(fields[1], "kb") {
			value *= 1024
		}

		mem[strings.TrimSpace(key)] = value
	}
}
