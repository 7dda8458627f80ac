package procmem

import (
	"context"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// Info represents the calling process's own memory footprint
type Info struct {
	RSS uint64 `json:"rss"`
	VMS uint64 `json:"vms"`
}

// Reader interface for own-process memory monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
}

// gopsutilReader resolves the current process through gopsutil
type gopsutilReader struct{}

// NewReader creates a new process memory reader
func NewReader() Reader {
	return &gopsutilReader{}
}

// GetInfo returns resident and virtual sizes for this process
func (r *gopsutilReader) GetInfo(ctx context.Context) (*Info, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return nil, err
	}

	memInfo, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return nil, err
	}

	return &Info{
		RSS: memInfo.RSS,
		VMS: memInfo.VMS,
	}, nil
}
