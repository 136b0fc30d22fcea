package server

import (
	"net/http"
	"time"
)

type healthBody struct {
	Status        string    `json:"status"`
	PID           int32     `json:"pid,omitempty"`
	CPUPercent    float64   `json:"cpuPercent"`
	RSSBytes      uint64    `json:"rssBytes"`
	Goroutines    int       `json:"goroutines"`
	ChunkDirFree  uint64    `json:"chunkDirFree"`
	AssetDirFree  uint64    `json:"assetDirFree"`
	ActiveUploads int       `json:"activeUploads"`
	SampledAt     time.Time `json:"sampledAt"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := healthBody{Status: "ok"}
	if s.deps.Health != nil {
		snap := s.deps.Health.Latest()
		body.PID = snap.PID
		body.CPUPercent = snap.CPUPercent
		body.RSSBytes = snap.RSSBytes
		body.Goroutines = snap.NumGoroutines
		body.ChunkDirFree = snap.ChunkDirFree
		body.AssetDirFree = snap.AssetDirFree
		body.ActiveUploads = snap.ActiveUploads
		body.SampledAt = snap.SampledAt
	}
	writeJSON(w, http.StatusOK, body)
}
