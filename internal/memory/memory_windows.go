//go:build windows

package memory

import (
	"context"
	"unsafe"

	"github.com/StackExchange/wmi"
	"golang.org/x/sys/windows"
)

var (
	kernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procGlobalMemoryStatusEx = kernel32.NewProc("GlobalMemoryStatusEx")
)

// memoryStatusEx mirrors the Win32 MEMORYSTATUSEX layout.
type memoryStatusEx struct {
	Length               uint32
	MemoryLoad           uint32
	TotalPhys            uint64
	AvailPhys            uint64
	TotalPageFile        uint64
	AvailPageFile        uint64
	TotalVirtual         uint64
	AvailVirtual         uint64
	AvailExtendedVirtual uint64
}

// Win32_OperatingSystem carries the WMI fallback columns. The provider
// reports both in kilobytes.
type Win32_OperatingSystem struct {
	TotalVisibleMemorySize uint64
	FreePhysicalMemory     uint64
}

// WindowsCollector builds snapshots from GlobalMemoryStatusEx with a
// WMI fallback
type WindowsCollector struct{}

// newPlatformCollector creates a new Windows memory collector
func newPlatformCollector() Collector {
	return &WindowsCollector{}
}

// Snapshot queries GlobalMemoryStatusEx. Windows does not expose
// distinct free and available counts here, so both map to AvailPhys.
// If the call fails the collector falls back to WMI.
func (c *WindowsCollector) Snapshot(ctx context.Context) *Stats {
	var status memoryStatusEx
	status.Length = uint32(unsafe.Sizeof(status))

	ret, _, _ := procGlobalMemoryStatusEx.Call(uintptr(unsafe.Pointer(&status)))
	if ret == 0 {
		return c.snapshotWMI(ctx)
	}

	used := safeSub(status.TotalPhys, status.AvailPhys)

	return &Stats{
		Total:       status.TotalPhys,
		Free:        status.AvailPhys,
		Available:   status.AvailPhys,
		Used:        used,
		UsedPercent: float64(status.MemoryLoad),
		Timestamp:   timestamp(),
	}
}

// snapshotWMI reads physical memory totals from Win32_OperatingSystem.
func (c *WindowsCollector) snapshotWMI(ctx context.Context) *Stats {
	var dst []Win32_OperatingSystem
	query := "SELECT TotalVisibleMemorySize, FreePhysicalMemory FROM Win32_OperatingSystem"
	if err := wmi.Query(query, &dst); err != nil || len(dst) == 0 {
		return zeroStats()
	}

	total := dst[0].TotalVisibleMemorySize * 1024
	free := dst[0].FreePhysicalMemory * 1024
	used := safeSub(total, free)

	return &Stats{
		Total:       total,
		Free:        free,
		Available:   free,
		Used:        used,
		UsedPercent: usedPercent(used, total),
		Timestamp:   timestamp(),
	}
}
