package simulator

import (
	"encoding/json"
	"fmt"
)

// RequestKind distinguishes read and write requests
type RequestKind int

const (
	RequestRead RequestKind = iota
	RequestWrite
)

func (k RequestKind) String() string {
	switch k {
	case RequestRead:
		return "read"
	case RequestWrite:
		return "write"
	default:
		return "unknown"
	}
}

// ParseRequestKind parses a string into RequestKind
func ParseRequestKind(s string) (RequestKind, error) {
	switch s {
	case "read":
		return RequestRead, nil
	case "write":
		return RequestWrite, nil
	default:
		return RequestRead, fmt.Errorf("invalid request kind: %s (must be 'read' or 'write')", s)
	}
}

// MarshalJSON implements json.Marshaler for RequestKind
func (k RequestKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler for RequestKind
func (k *RequestKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRequestKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Request is one pending disk operation. It is immutable once created and is
// owned by exactly one component at a time: the scheduler queue until Next
// hands it out, then the disk head until completion.
type Request struct {
	PID       int         `json:"pid"`
	Sector    int         `json:"sector"`
	Kind      RequestKind `json:"kind"`
	IssueTime float64     `json:"issueTime"` // Virtual time the request entered the scheduler
}

// Track returns the track the request's sector lives on
func (r *Request) Track(sectorsPerTrack int) int {
	return r.Sector / sectorsPerTrack
}

func (r *Request) String() string {
	return fmt.Sprintf("Request(pid=%d, %s sector %d)", r.PID, r.Kind, r.Sector)
}

// Scheduler orders pending disk requests. Implementations are chosen once at
// configuration time; there is no runtime strategy switching.
type Scheduler interface {
	// Name returns the strategy name for logging
	Name() string

	// Enqueue adds a request to the pending set
	Enqueue(request *Request)

	// Next removes and returns the request the disk should service next,
	// given the head's current track. Returns nil when nothing is pending.
	Next(currentTrack int) *Request

	// Pending returns the number of queued requests
	Pending() int
}

// NewScheduler creates the scheduler for the configured strategy
func NewScheduler(config Config) (Scheduler, error) {
	switch config.Scheduler {
	case SchedulerFIFO:
		return NewFIFOScheduler(), nil
	case SchedulerLOOK:
		return NewLOOKScheduler(config.SectorsPerTrack, config.MaxTrackAccesses), nil
	case SchedulerNLOOK:
		return NewNLOOKScheduler(config.SectorsPerTrack), nil
	default:
		return nil, ErrInvalidConfig(fmt.Sprintf("unknown scheduler: %d", config.Scheduler))
	}
}

// FIFOScheduler services requests in strict arrival order, ignoring the head
// position entirely.
type FIFOScheduler struct {
	queue []*Request
}

// NewFIFOScheduler creates an empty FIFO scheduler
func NewFIFOScheduler() *FIFOScheduler {
	return &FIFOScheduler{queue: make([]*Request, 0)}
}

func (s *FIFOScheduler) Name() string { return "FIFO" }

func (s *FIFOScheduler) Enqueue(request *Request) {
	s.queue = append(s.queue, request)
}

func (s *FIFOScheduler) Next(currentTrack int) *Request {
	if len(s.queue) == 0 {
		return nil
	}
	request := s.queue[0]
	// Copy instead of re-slicing so the backing array does not pin
	// already-serviced requests
	s.queue = append([]*Request(nil), s.queue[1:]...)
	return request
}

func (s *FIFOScheduler) Pending() int { return len(s.queue) }
