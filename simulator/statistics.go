package simulator

import (
	"fmt"
	"sort"
	"strings"
)

// Statistics accumulates counters over a run and produces the final report.
// All Record* methods are called from the event loop; nothing here is
// concurrency-safe and nothing needs to be.
type Statistics struct {
	Timestamp float64 `json:"timestamp"` // Virtual time of the last update

	// Buffer cache
	CacheHits   int     `json:"cacheHits"`
	CacheMisses int     `json:"cacheMisses"`
	HitRate     float64 `json:"hitRate"` // hits / (hits + misses), 0 when no lookups

	// Request mix
	TotalRequests int `json:"totalRequests"` // Requests that reached the disk
	ReadRequests  int `json:"readRequests"`
	WriteRequests int `json:"writeRequests"`

	// Head movement
	SeekCount         int     `json:"seekCount"`
	TotalSeekTime     float64 `json:"totalSeekTime"`
	TotalSeekDistance int     `json:"totalSeekDistance"` // In tracks
	AvgSeekTime       float64 `json:"avgSeekTime"`
	AvgSeekDistance   float64 `json:"avgSeekDistance"`

	// Rotation and transfer
	TotalRotationalLatency float64 `json:"totalRotationalLatency"`
	TotalTransferTime      float64 `json:"totalTransferTime"`

	// Request latency, measured from issue to completion interrupt
	AvgWaitTime float64 `json:"avgWaitTime"`
	MaxWaitTime float64 `json:"maxWaitTime"`

	// Per-process completion times, keyed by PID
	CompletionTimes map[int]float64 `json:"completionTimes"`

	TotalTime float64 `json:"totalTime"` // Virtual time when the last event fired

	waitTimes []float64
}

// NewStatistics creates an empty statistics collector
func NewStatistics() *Statistics {
	return &Statistics{
		CompletionTimes: make(map[int]float64),
		waitTimes:       make([]float64, 0),
	}
}

// RecordCacheHit counts a lookup served from the cache
func (s *Statistics) RecordCacheHit() {
	s.CacheHits++
}

// RecordCacheMiss counts a lookup that fell through to the disk
func (s *Statistics) RecordCacheMiss() {
	s.CacheMisses++
}

// RecordSeek counts one head movement
func (s *Statistics) RecordSeek(distance int, seekTime float64) {
	s.SeekCount++
	s.TotalSeekDistance += distance
	s.TotalSeekTime += seekTime
}

// RecordRotation accumulates rotational latency
func (s *Statistics) RecordRotation(latency float64) {
	s.TotalRotationalLatency += latency
}

// RecordTransfer accumulates sector transfer time
func (s *Statistics) RecordTransfer(transferTime float64) {
	s.TotalTransferTime += transferTime
}

// RecordRequestComplete counts a finished disk request. waitTime is the span
// from Enqueue to the completion interrupt.
func (s *Statistics) RecordRequestComplete(kind RequestKind, waitTime float64) {
	s.TotalRequests++
	if kind == RequestWrite {
		s.WriteRequests++
	} else {
		s.ReadRequests++
	}
	s.waitTimes = append(s.waitTimes, waitTime)
	if waitTime > s.MaxWaitTime {
		s.MaxWaitTime = waitTime
	}
}

// RecordProcessTerminated records when a process finished its trace
func (s *Statistics) RecordProcessTerminated(pid int, virtualTime float64) {
	s.CompletionTimes[pid] = virtualTime
}

// Finalize computes the derived averages. Call once, after the event loop
// drains.
func (s *Statistics) Finalize(virtualTime float64) {
	s.Timestamp = virtualTime
	s.TotalTime = virtualTime
	if lookups := s.CacheHits + s.CacheMisses; lookups > 0 {
		s.HitRate = float64(s.CacheHits) / float64(lookups)
	}
	if s.SeekCount > 0 {
		s.AvgSeekTime = s.TotalSeekTime / float64(s.SeekCount)
		s.AvgSeekDistance = float64(s.TotalSeekDistance) / float64(s.SeekCount)
	}
	if len(s.waitTimes) > 0 {
		sum := 0.0
		for _, w := range s.waitTimes {
			sum += w
		}
		s.AvgWaitTime = sum / float64(len(s.waitTimes))
	}
}

// Report renders the end-of-run summary
func (s *Statistics) Report() string {
	var b strings.Builder
	b.WriteString("\n=== Simulation Results ===\n")
	fmt.Fprintf(&b, "Total time:            %.2f ms\n", s.TotalTime)
	fmt.Fprintf(&b, "Disk requests:         %d (%d reads, %d writes)\n",
		s.TotalRequests, s.ReadRequests, s.WriteRequests)

	b.WriteString("\nBuffer cache:\n")
	fmt.Fprintf(&b, "  Hits:                %d\n", s.CacheHits)
	fmt.Fprintf(&b, "  Misses:              %d\n", s.CacheMisses)
	fmt.Fprintf(&b, "  Hit rate:            %.1f%%\n", s.HitRate*100)

	b.WriteString("\nDisk head:\n")
	fmt.Fprintf(&b, "  Seeks:               %d\n", s.SeekCount)
	fmt.Fprintf(&b, "  Total seek distance: %d tracks\n", s.TotalSeekDistance)
	fmt.Fprintf(&b, "  Avg seek distance:   %.1f tracks\n", s.AvgSeekDistance)
	fmt.Fprintf(&b, "  Total seek time:     %.2f ms\n", s.TotalSeekTime)
	fmt.Fprintf(&b, "  Avg seek time:       %.2f ms\n", s.AvgSeekTime)
	fmt.Fprintf(&b, "  Rotational latency:  %.2f ms\n", s.TotalRotationalLatency)
	fmt.Fprintf(&b, "  Transfer time:       %.2f ms\n", s.TotalTransferTime)

	b.WriteString("\nRequest latency:\n")
	fmt.Fprintf(&b, "  Average wait:        %.2f ms\n", s.AvgWaitTime)
	fmt.Fprintf(&b, "  Maximum wait:        %.2f ms\n", s.MaxWaitTime)

	b.WriteString("\nProcess completion:\n")
	pids := make([]int, 0, len(s.CompletionTimes))
	for pid := range s.CompletionTimes {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	for _, pid := range pids {
		fmt.Fprintf(&b, "  PID %d:               %.2f ms\n", pid, s.CompletionTimes[pid])
	}
	return b.String()
}

// Clone creates a copy of the statistics
func (s *Statistics) Clone() *Statistics {
	clone := *s
	clone.CompletionTimes = make(map[int]float64, len(s.CompletionTimes))
	for pid, t := range s.CompletionTimes {
		clone.CompletionTimes[pid] = t
	}
	clone.waitTimes = append([]float64{}, s.waitTimes...)
	return &clone
}
