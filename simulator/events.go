package simulator

import "fmt"

// EventKind identifies the type of a simulation event
type EventKind int

const (
	EventProcessStart EventKind = iota
	EventSyscallStart
	EventSyscallEnd
	EventCacheHit
	EventCacheMiss
	EventRequestIssued
	EventSeekComplete
	EventRotationComplete
	EventTransferComplete
	EventInterruptRaised
	EventRequestComplete
	EventProcessCompute
	EventQuantumExpired
	EventProcessTerminated
)

func (k EventKind) String() string {
	switch k {
	case EventProcessStart:
		return "process_start"
	case EventSyscallStart:
		return "syscall_start"
	case EventSyscallEnd:
		return "syscall_end"
	case EventCacheHit:
		return "cache_hit"
	case EventCacheMiss:
		return "cache_miss"
	case EventRequestIssued:
		return "request_issued"
	case EventSeekComplete:
		return "seek_complete"
	case EventRotationComplete:
		return "rotation_complete"
	case EventTransferComplete:
		return "transfer_complete"
	case EventInterruptRaised:
		return "interrupt_raised"
	case EventRequestComplete:
		return "request_complete"
	case EventProcessCompute:
		return "process_compute"
	case EventQuantumExpired:
		return "quantum_expired"
	case EventProcessTerminated:
		return "process_terminated"
	default:
		return "unknown"
	}
}

// Event is the base interface for all simulation events
type Event interface {
	Timestamp() float64 // Virtual time in milliseconds
	Kind() EventKind
	String() string
}

// ProcessStartEvent dispatches a process onto the simulated CPU
type ProcessStartEvent struct {
	timestamp float64
	pid       int
}

func NewProcessStartEvent(timestamp float64, pid int) *ProcessStartEvent {
	return &ProcessStartEvent{timestamp: timestamp, pid: pid}
}

func (e *ProcessStartEvent) Timestamp() float64 { return e.timestamp }
func (e *ProcessStartEvent) Kind() EventKind    { return EventProcessStart }
func (e *ProcessStartEvent) PID() int           { return e.pid }
func (e *ProcessStartEvent) String() string {
	return fmt.Sprintf("ProcessStart(t=%.2fms, pid=%d)", e.timestamp, e.pid)
}

// SyscallStartEvent represents the running process entering a read/write syscall
type SyscallStartEvent struct {
	timestamp float64
	pid       int
	op        RequestKind
	sector    int
}

func NewSyscallStartEvent(timestamp float64, pid int, op RequestKind, sector int) *SyscallStartEvent {
	return &SyscallStartEvent{timestamp: timestamp, pid: pid, op: op, sector: sector}
}

func (e *SyscallStartEvent) Timestamp() float64 { return e.timestamp }
func (e *SyscallStartEvent) Kind() EventKind    { return EventSyscallStart }
func (e *SyscallStartEvent) PID() int           { return e.pid }
func (e *SyscallStartEvent) Op() RequestKind    { return e.op }
func (e *SyscallStartEvent) Sector() int        { return e.sector }
func (e *SyscallStartEvent) String() string {
	return fmt.Sprintf("SyscallStart(t=%.2fms, pid=%d, %s sector %d)", e.timestamp, e.pid, e.op, e.sector)
}

// SyscallEndEvent completes the syscall once its CPU cost has elapsed.
// The cache outcome was decided at syscall start and is carried here.
type SyscallEndEvent struct {
	timestamp float64
	pid       int
	op        RequestKind
	sector    int
	miss      bool
}

func NewSyscallEndEvent(timestamp float64, pid int, op RequestKind, sector int, miss bool) *SyscallEndEvent {
	return &SyscallEndEvent{timestamp: timestamp, pid: pid, op: op, sector: sector, miss: miss}
}

func (e *SyscallEndEvent) Timestamp() float64 { return e.timestamp }
func (e *SyscallEndEvent) Kind() EventKind    { return EventSyscallEnd }
func (e *SyscallEndEvent) PID() int           { return e.pid }
func (e *SyscallEndEvent) Op() RequestKind    { return e.op }
func (e *SyscallEndEvent) Sector() int        { return e.sector }
func (e *SyscallEndEvent) Miss() bool         { return e.miss }
func (e *SyscallEndEvent) String() string {
	return fmt.Sprintf("SyscallEnd(t=%.2fms, pid=%d, sector=%d, miss=%v)", e.timestamp, e.pid, e.sector, e.miss)
}

// CacheHitEvent records a buffer cache hit for logging/statistics
type CacheHitEvent struct {
	timestamp float64
	pid       int
	sector    int
}

func NewCacheHitEvent(timestamp float64, pid, sector int) *CacheHitEvent {
	return &CacheHitEvent{timestamp: timestamp, pid: pid, sector: sector}
}

func (e *CacheHitEvent) Timestamp() float64 { return e.timestamp }
func (e *CacheHitEvent) Kind() EventKind    { return EventCacheHit }
func (e *CacheHitEvent) PID() int           { return e.pid }
func (e *CacheHitEvent) Sector() int        { return e.sector }
func (e *CacheHitEvent) String() string {
	return fmt.Sprintf("CacheHit(t=%.2fms, pid=%d, sector=%d)", e.timestamp, e.pid, e.sector)
}

// CacheMissEvent records a buffer cache miss for logging/statistics
type CacheMissEvent struct {
	timestamp float64
	pid       int
	sector    int
}

func NewCacheMissEvent(timestamp float64, pid, sector int) *CacheMissEvent {
	return &CacheMissEvent{timestamp: timestamp, pid: pid, sector: sector}
}

func (e *CacheMissEvent) Timestamp() float64 { return e.timestamp }
func (e *CacheMissEvent) Kind() EventKind    { return EventCacheMiss }
func (e *CacheMissEvent) PID() int           { return e.pid }
func (e *CacheMissEvent) Sector() int        { return e.sector }
func (e *CacheMissEvent) String() string {
	return fmt.Sprintf("CacheMiss(t=%.2fms, pid=%d, sector=%d)", e.timestamp, e.pid, e.sector)
}

// RequestIssuedEvent marks the hand-off of a request to the I/O scheduler queue
type RequestIssuedEvent struct {
	timestamp float64
	request   *Request
}

func NewRequestIssuedEvent(timestamp float64, request *Request) *RequestIssuedEvent {
	return &RequestIssuedEvent{timestamp: timestamp, request: request}
}

func (e *RequestIssuedEvent) Timestamp() float64 { return e.timestamp }
func (e *RequestIssuedEvent) Kind() EventKind    { return EventRequestIssued }
func (e *RequestIssuedEvent) Request() *Request  { return e.request }
func (e *RequestIssuedEvent) String() string {
	return fmt.Sprintf("RequestIssued(t=%.2fms, pid=%d, sector=%d)", e.timestamp, e.request.PID, e.request.Sector)
}

// SeekCompleteEvent fires when the head arrives at the target track
type SeekCompleteEvent struct {
	timestamp float64
	request   *Request
}

func NewSeekCompleteEvent(timestamp float64, request *Request) *SeekCompleteEvent {
	return &SeekCompleteEvent{timestamp: timestamp, request: request}
}

func (e *SeekCompleteEvent) Timestamp() float64 { return e.timestamp }
func (e *SeekCompleteEvent) Kind() EventKind    { return EventSeekComplete }
func (e *SeekCompleteEvent) Request() *Request  { return e.request }
func (e *SeekCompleteEvent) String() string {
	return fmt.Sprintf("SeekComplete(t=%.2fms, sector=%d)", e.timestamp, e.request.Sector)
}

// RotationCompleteEvent fires when the target sector reaches the head
type RotationCompleteEvent struct {
	timestamp float64
	request   *Request
}

func NewRotationCompleteEvent(timestamp float64, request *Request) *RotationCompleteEvent {
	return &RotationCompleteEvent{timestamp: timestamp, request: request}
}

func (e *RotationCompleteEvent) Timestamp() float64 { return e.timestamp }
func (e *RotationCompleteEvent) Kind() EventKind    { return EventRotationComplete }
func (e *RotationCompleteEvent) Request() *Request  { return e.request }
func (e *RotationCompleteEvent) String() string {
	return fmt.Sprintf("RotationComplete(t=%.2fms, sector=%d)", e.timestamp, e.request.Sector)
}

// TransferCompleteEvent fires when the sector has been read or written
type TransferCompleteEvent struct {
	timestamp float64
	request   *Request
}

func NewTransferCompleteEvent(timestamp float64, request *Request) *TransferCompleteEvent {
	return &TransferCompleteEvent{timestamp: timestamp, request: request}
}

func (e *TransferCompleteEvent) Timestamp() float64 { return e.timestamp }
func (e *TransferCompleteEvent) Kind() EventKind    { return EventTransferComplete }
func (e *TransferCompleteEvent) Request() *Request  { return e.request }
func (e *TransferCompleteEvent) String() string {
	return fmt.Sprintf("TransferComplete(t=%.2fms, sector=%d)", e.timestamp, e.request.Sector)
}

// InterruptRaisedEvent models the disk controller raising its completion interrupt
type InterruptRaisedEvent struct {
	timestamp float64
	request   *Request
}

func NewInterruptRaisedEvent(timestamp float64, request *Request) *InterruptRaisedEvent {
	return &InterruptRaisedEvent{timestamp: timestamp, request: request}
}

func (e *InterruptRaisedEvent) Timestamp() float64 { return e.timestamp }
func (e *InterruptRaisedEvent) Kind() EventKind    { return EventInterruptRaised }
func (e *InterruptRaisedEvent) Request() *Request  { return e.request }
func (e *InterruptRaisedEvent) String() string {
	return fmt.Sprintf("InterruptRaised(t=%.2fms, sector=%d)", e.timestamp, e.request.Sector)
}

// RequestCompleteEvent finishes a disk request after interrupt handling: the
// block enters the buffer cache and the issuing process is unblocked
type RequestCompleteEvent struct {
	timestamp float64
	request   *Request
}

func NewRequestCompleteEvent(timestamp float64, request *Request) *RequestCompleteEvent {
	return &RequestCompleteEvent{timestamp: timestamp, request: request}
}

func (e *RequestCompleteEvent) Timestamp() float64 { return e.timestamp }
func (e *RequestCompleteEvent) Kind() EventKind    { return EventRequestComplete }
func (e *RequestCompleteEvent) Request() *Request  { return e.request }
func (e *RequestCompleteEvent) String() string {
	return fmt.Sprintf("RequestComplete(t=%.2fms, pid=%d, sector=%d)", e.timestamp, e.request.PID, e.request.Sector)
}

// ProcessComputeEvent represents the running process consuming CPU on cached data
type ProcessComputeEvent struct {
	timestamp float64
	pid       int
}

func NewProcessComputeEvent(timestamp float64, pid int) *ProcessComputeEvent {
	return &ProcessComputeEvent{timestamp: timestamp, pid: pid}
}

func (e *ProcessComputeEvent) Timestamp() float64 { return e.timestamp }
func (e *ProcessComputeEvent) Kind() EventKind    { return EventProcessCompute }
func (e *ProcessComputeEvent) PID() int           { return e.pid }
func (e *ProcessComputeEvent) String() string {
	return fmt.Sprintf("ProcessCompute(t=%.2fms, pid=%d)", e.timestamp, e.pid)
}

// QuantumExpiredEvent preempts the running process
type QuantumExpiredEvent struct {
	timestamp float64
	pid       int
}

func NewQuantumExpiredEvent(timestamp float64, pid int) *QuantumExpiredEvent {
	return &QuantumExpiredEvent{timestamp: timestamp, pid: pid}
}

func (e *QuantumExpiredEvent) Timestamp() float64 { return e.timestamp }
func (e *QuantumExpiredEvent) Kind() EventKind    { return EventQuantumExpired }
func (e *QuantumExpiredEvent) PID() int           { return e.pid }
func (e *QuantumExpiredEvent) String() string {
	return fmt.Sprintf("QuantumExpired(t=%.2fms, pid=%d)", e.timestamp, e.pid)
}

// ProcessTerminatedEvent marks a process whose request trace is exhausted
type ProcessTerminatedEvent struct {
	timestamp float64
	pid       int
}

func NewProcessTerminatedEvent(timestamp float64, pid int) *ProcessTerminatedEvent {
	return &ProcessTerminatedEvent{timestamp: timestamp, pid: pid}
}

func (e *ProcessTerminatedEvent) Timestamp() float64 { return e.timestamp }
func (e *ProcessTerminatedEvent) Kind() EventKind    { return EventProcessTerminated }
func (e *ProcessTerminatedEvent) PID() int           { return e.pid }
func (e *ProcessTerminatedEvent) String() string {
	return fmt.Sprintf("ProcessTerminated(t=%.2fms, pid=%d)", e.timestamp, e.pid)
}
