//go:build windows

package memory

import (
	"context"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStatusExLayout(t *testing.T) {
	// GlobalMemoryStatusEx rejects the call unless Length matches the
	// 64 byte Win32 struct exactly.
	assert.Equal(t, uintptr(64), unsafe.Sizeof(memoryStatusEx{}))
}

func TestWindowsSnapshot(t *testing.T) {
	c := newPlatformCollector()
	stats := c.Snapshot(context.Background())

	assert.Greater(t, stats.Total, uint64(0))
	assert.LessOrEqual(t, stats.Used, stats.Total)
	assert.Equal(t, stats.Free, stats.Available)
	assert.GreaterOrEqual(t, stats.UsedPercent, float64(0))
	assert.LessOrEqual(t, stats.UsedPercent, float64(100))
	assert.NotEmpty(t, stats.Timestamp)
}
