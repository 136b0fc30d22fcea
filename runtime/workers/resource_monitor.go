package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	goruntime "runtime"
	"sync"
	"time"
	"vaultcast/contract"
	"vaultcast/domain"

	"github.com/docker/go-units"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/process"
)

// ResourceMonitor samples process and disk usage at a fixed interval.
type ResourceMonitor struct {
	mu          sync.RWMutex
	log         *slog.Logger
	tracker     contract.SessionTracker
	chunkDir    string
	assetDir    string
	interval    time.Duration
	minFreeDisk uint64
	latest      domain.ResourceSnapshot
}

func NewResourceMonitor(tracker contract.SessionTracker, chunkDir, assetDir string,
	interval time.Duration, minFreeDisk uint64, log *slog.Logger) *ResourceMonitor {
	return &ResourceMonitor{
		log:         log,
		tracker:     tracker,
		chunkDir:    chunkDir,
		assetDir:    assetDir,
		interval:    interval,
		minFreeDisk: minFreeDisk,
	}
}

func (m *ResourceMonitor) Run(ctx context.Context) error {
	m.Sample()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Context done, stopping resource sampling")
			return nil
		case <-ticker.C:
			m.Sample()
		}
	}
}

// Sample refreshes the latest snapshot; probes that fail leave their fields at zero.
func (m *ResourceMonitor) Sample() domain.ResourceSnapshot {
	snapshot := domain.ResourceSnapshot{
		PID:           int32(os.Getpid()),
		NumGoroutines: goruntime.NumGoroutine(),
		ActiveUploads: m.tracker.ActiveCount(),
		SampledAt:     time.Now().UTC(),
	}

	if p, err := process.NewProcess(snapshot.PID); err == nil {
		if cpu, err := p.CPUPercent(); err == nil {
			snapshot.CPUPercent = cpu
		}
		if mem, err := p.MemoryInfo(); err == nil {
			snapshot.RSSBytes = mem.RSS
		}
	} else {
		m.log.Debug("Error while retrieving process", "pid", snapshot.PID, "err", err)
	}

	if usage, err := disk.Usage(m.chunkDir); err == nil {
		snapshot.ChunkDirFree = usage.Free
	} else {
		m.log.Debug("Cannot read disk usage", "path", m.chunkDir, "err", err)
	}
	if usage, err := disk.Usage(m.assetDir); err == nil {
		snapshot.AssetDirFree = usage.Free
		snapshot.AssetDirUsed = usage.UsedPercent
	} else {
		m.log.Debug("Cannot read disk usage", "path", m.assetDir, "err", err)
	}

	if m.minFreeDisk > 0 && (snapshot.ChunkDirFree < m.minFreeDisk || snapshot.AssetDirFree < m.minFreeDisk) {
		m.log.Warn("Low disk space",
			"chunk_dir_free", units.BytesSize(float64(snapshot.ChunkDirFree)),
			"asset_dir_free", units.BytesSize(float64(snapshot.AssetDirFree)),
			"threshold", units.BytesSize(float64(m.minFreeDisk)))
	}
	m.log.Debug("Resource sample",
		"cpu", snapshot.CPUPercent,
		"rss", units.BytesSize(float64(snapshot.RSSBytes)),
		"goroutines", snapshot.NumGoroutines,
		"active_uploads", snapshot.ActiveUploads)

	m.mu.Lock()
	m.latest = snapshot
	m.mu.Unlock()
	return snapshot
}

// IsReady fails while either directory is below the free space threshold.
// Before the first sample there is nothing to judge.
func (m *ResourceMonitor) IsReady(_ context.Context) error {
	snapshot := m.Latest()
	if snapshot.SampledAt.IsZero() || m.minFreeDisk == 0 {
		return nil
	}
	if snapshot.ChunkDirFree < m.minFreeDisk || snapshot.AssetDirFree < m.minFreeDisk {
		return fmt.Errorf("free disk below %s", units.BytesSize(float64(m.minFreeDisk)))
	}
	return nil
}

func (m *ResourceMonitor) Latest() domain.ResourceSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}
