package domain

import "time"

// ResourceSnapshot process and disk usage sampled by the resource monitor.
type ResourceSnapshot struct {
	PID           int32
	CPUPercent    float64
	RSSBytes      uint64
	NumGoroutines int
	ChunkDirFree  uint64
	AssetDirFree  uint64
	AssetDirUsed  float64
	ActiveUploads int
	SampledAt     time.Time
}
