package simulator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchedulerKind selects the I/O scheduling strategy
type SchedulerKind int

const (
	SchedulerFIFO SchedulerKind = iota
	SchedulerLOOK
	SchedulerNLOOK
)

func (k SchedulerKind) String() string {
	switch k {
	case SchedulerFIFO:
		return "fifo"
	case SchedulerLOOK:
		return "look"
	case SchedulerNLOOK:
		return "nlook"
	default:
		return "unknown"
	}
}

// ParseSchedulerKind parses a string into SchedulerKind
func ParseSchedulerKind(s string) (SchedulerKind, error) {
	switch strings.ToLower(s) {
	case "fifo":
		return SchedulerFIFO, nil
	case "look":
		return SchedulerLOOK, nil
	case "nlook":
		return SchedulerNLOOK, nil
	default:
		return SchedulerFIFO, fmt.Errorf("invalid scheduler: %s (must be 'fifo', 'look' or 'nlook')", s)
	}
}

// MarshalJSON implements json.Marshaler for SchedulerKind
func (k SchedulerKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler for SchedulerKind
func (k *SchedulerKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSchedulerKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// KnownScenarios lists the built-in scenario names
var KnownScenarios = []string{"default", "sequential", "random", "cache-test"}

// Config holds all simulation parameters
type Config struct {
	// Disk geometry
	NumTracks        int     `json:"numTracks"`        // Tracks on the platter
	SectorsPerTrack  int     `json:"sectorsPerTrack"`  // Sectors per track
	SeekTimePerTrack float64 `json:"seekTimePerTrack"` // Head movement cost per track (ms)
	RPM              int     `json:"rpm"`              // Platter rotation speed

	// Buffer cache
	TotalBuffers  int `json:"totalBuffers"`  // Cache capacity in blocks
	MaxHotSegment int `json:"maxHotSegment"` // Cap on the hot (repeat-reference) segment

	// CPU timing
	Quantum       float64 `json:"quantum"`       // Time slice per dispatch (ms)
	SyscallTime   float64 `json:"syscallTime"`   // Cost of entering a read/write syscall (ms)
	InterruptTime float64 `json:"interruptTime"` // Cost of handling the disk interrupt (ms)
	ComputeTime   float64 `json:"computeTime"`   // Per-operation data processing cost (ms)

	// Scheduling
	Scheduler        SchedulerKind `json:"scheduler"`
	MaxTrackAccesses int           `json:"maxTrackAccesses"` // LOOK starvation guard

	// Workload
	NumProcesses int    `json:"numProcesses"`
	Scenario     string `json:"scenario"`

	// Output
	OutputFile string `json:"outputFile,omitempty"`
	Verbose    bool   `json:"verbose"`
}

// DefaultConfig returns the stock configuration: a 10000-track 7500 RPM disk,
// a 10-buffer cache and two processes on the default scenario
func DefaultConfig() Config {
	return Config{
		NumTracks:        10000,
		SectorsPerTrack:  500,
		SeekTimePerTrack: 0.5,
		RPM:              7500,
		TotalBuffers:     10,
		MaxHotSegment:    5,
		Quantum:          20.0,
		SyscallTime:      0.15,
		InterruptTime:    0.05,
		ComputeTime:      7.0,
		Scheduler:        SchedulerFIFO,
		MaxTrackAccesses: 10,
		NumProcesses:     2,
		Scenario:         "default",
	}
}

// Validate checks configuration values. Errors here are fatal at the program
// boundary; nothing inside the event loop re-validates.
func (c *Config) Validate() error {
	if c.NumTracks <= 0 {
		return ErrInvalidConfig("numTracks must be > 0")
	}
	if c.SectorsPerTrack <= 0 {
		return ErrInvalidConfig("sectorsPerTrack must be > 0")
	}
	if c.SeekTimePerTrack < 0 {
		return ErrInvalidConfig("seekTimePerTrack must be >= 0")
	}
	if c.RPM <= 0 {
		return ErrInvalidConfig("rpm must be > 0")
	}
	if c.TotalBuffers <= 0 {
		return ErrInvalidConfig("totalBuffers must be > 0")
	}
	if c.MaxHotSegment < 1 {
		return ErrInvalidConfig("maxHotSegment must be >= 1")
	}
	if c.Quantum <= 0 {
		return ErrInvalidConfig("quantum must be > 0")
	}
	if c.SyscallTime < 0 {
		return ErrInvalidConfig("syscallTime must be >= 0")
	}
	if c.InterruptTime < 0 {
		return ErrInvalidConfig("interruptTime must be >= 0")
	}
	if c.ComputeTime < 0 {
		return ErrInvalidConfig("computeTime must be >= 0")
	}
	if c.MaxTrackAccesses < 1 {
		return ErrInvalidConfig("maxTrackAccesses must be >= 1")
	}
	if c.NumProcesses <= 0 {
		return ErrInvalidConfig("numProcesses must be > 0")
	}
	known := false
	for _, name := range KnownScenarios {
		if c.Scenario == name {
			known = true
			break
		}
	}
	if !known {
		return ErrInvalidConfig(fmt.Sprintf("unknown scenario: %s (available: %s)",
			c.Scenario, strings.Join(KnownScenarios, ", ")))
	}
	return nil
}
