package domain

import "fmt"

// RangeRequest an inclusive byte window over a file of TotalSize bytes.
type RangeRequest struct {
	Start     int64
	End       int64
	TotalSize int64
	Partial   bool
}

func FullRange(total int64) RangeRequest {
	return RangeRequest{Start: 0, End: total - 1, TotalSize: total}
}

func (r RangeRequest) Length() int64 {
	if r.TotalSize == 0 {
		return 0
	}
	return r.End - r.Start + 1
}

func (r RangeRequest) ContentRange() string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, r.TotalSize)
}
