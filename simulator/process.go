package simulator

import "fmt"

// ProcessState is the scheduling state of a simulated process
type ProcessState int

const (
	StateReady ProcessState = iota
	StateRunning
	StateBlocked
	StateTerminated
)

func (s ProcessState) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateBlocked:
		return "BLOCKED"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Operation is one step of a process's request trace
type Operation struct {
	Kind   RequestKind `json:"kind"`
	Sector int         `json:"sector"`
}

// Process is a finite state machine for one simulated user task. Transitions
// are driven only by events: Ready -> Running on dispatch, Running -> Blocked
// when a cache miss sends a request to disk, Running -> Ready on quantum
// expiry, Blocked -> Ready on request completion, and Terminated once the
// trace is exhausted.
type Process struct {
	PID              int
	State            ProcessState
	QuantumRemaining float64

	// ComputePending is set when a disk request completed while the process
	// was blocked; the next dispatch owes it the compute phase for that
	// operation instead of a fresh syscall.
	ComputePending bool

	trace  []Operation
	nextOp int
}

// NewProcess creates a Ready process with the given request trace
func NewProcess(pid int, trace []Operation) *Process {
	return &Process{
		PID:   pid,
		State: StateReady,
		trace: append([]Operation(nil), trace...),
	}
}

// PeekOp returns the current trace operation without consuming it
func (p *Process) PeekOp() (Operation, bool) {
	if p.nextOp >= len(p.trace) {
		return Operation{}, false
	}
	return p.trace[p.nextOp], true
}

// Advance consumes the current trace operation once it has been satisfied
func (p *Process) Advance() {
	if p.nextOp < len(p.trace) {
		p.nextOp++
	}
}

// Finished reports whether the request trace is exhausted
func (p *Process) Finished() bool {
	return p.nextOp >= len(p.trace)
}

// Completed returns the number of satisfied operations
func (p *Process) Completed() int { return p.nextOp }

// TraceLen returns the total number of operations in the trace
func (p *Process) TraceLen() int { return len(p.trace) }

// ChargeCPU deducts simulated CPU time from the remaining quantum
func (p *Process) ChargeCPU(ms float64) {
	p.QuantumRemaining -= ms
}

func (p *Process) String() string {
	return fmt.Sprintf("Process(pid=%d, state=%s, %d/%d ops)", p.PID, p.State, p.nextOp, len(p.trace))
}
