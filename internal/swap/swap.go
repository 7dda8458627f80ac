package swap

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"
)

// Info represents swap space usage
type Info struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// Reader interface for swap monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
}

// gopsutilReader reads swap counters through gopsutil, which covers
// every platform the service targets with one code path
type gopsutilReader struct{}

// NewReader creates a new swap reader
func NewReader() Reader {
	return &gopsutilReader{}
}

// GetInfo returns swap usage
func (r *gopsutilReader) GetInfo(ctx context.Context) (*Info, error) {
	swapInfo, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	return &Info{
		Total:       swapInfo.Total,
		Used:        swapInfo.Used,
		Free:        swapInfo.Free,
		UsedPercent: swapInfo.UsedPercent,
	}, nil
}
