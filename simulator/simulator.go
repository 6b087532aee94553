package simulator

import (
	"fmt"
	"strings"
)

// Simulator is a PURE discrete event simulator with NO concurrency primitives.
// All state is advanced single-threaded via Run or Step; the caller manages
// pacing and threading.
//
// The model couples three machines through the event queue: a round-robin CPU
// running process traces, a two-segment LRU buffer cache in front of the disk,
// and a single disk head fed by the configured I/O scheduler. Virtual time is
// in milliseconds and only ever moves forward.
type Simulator struct {
	config    Config
	geometry  DiskGeometry
	head      *DiskHead
	cache     *BufferCache
	scheduler Scheduler
	queue     *EventQueue
	stats     *Statistics

	processes  map[int]*Process
	pids       []int // PIDs in creation order, for the banner and final report
	readyQueue []int // PIDs waiting for the CPU, dispatch order
	running    int   // PID holding the CPU, 0 when idle
	terminated int

	virtualTime float64

	// Event logging callback (optional, for CLI/UI output)
	LogEvent func(msg string)
}

// NewSimulator creates a simulator from validated configuration
func NewSimulator(config Config) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	scheduler, err := NewScheduler(config)
	if err != nil {
		return nil, err
	}

	processes, err := BuildScenario(config)
	if err != nil {
		return nil, err
	}

	sim := &Simulator{
		config:     config,
		geometry:   NewDiskGeometry(config),
		head:       NewDiskHead(),
		cache:      NewBufferCache(config.TotalBuffers, config.MaxHotSegment),
		scheduler:  scheduler,
		queue:      NewEventQueue(),
		stats:      NewStatistics(),
		processes:  make(map[int]*Process, len(processes)),
		pids:       make([]int, 0, len(processes)),
		readyQueue: make([]int, 0, len(processes)),
	}
	for _, p := range processes {
		sim.processes[p.PID] = p
		sim.pids = append(sim.pids, p.PID)
		sim.readyQueue = append(sim.readyQueue, p.PID)
	}
	return sim, nil
}

// Run drains the event queue to completion and finalizes statistics
func (s *Simulator) Run() *Statistics {
	s.scheduleNextProcess()
	for s.Step() {
	}
	s.stats.Finalize(s.virtualTime)
	return s.stats
}

// Step processes a single event. It returns false once the queue is empty.
func (s *Simulator) Step() bool {
	event := s.queue.Pop()
	if event == nil {
		if s.terminated != len(s.processes) {
			panic(fmt.Sprintf("event queue drained with %d of %d processes unfinished",
				len(s.processes)-s.terminated, len(s.processes)))
		}
		return false
	}
	// Time is monotonic: handlers only ever schedule at or after now
	if event.Timestamp() > s.virtualTime {
		s.virtualTime = event.Timestamp()
	}
	s.processEvent(event)
	return true
}

// Done reports whether every process has finished its trace
func (s *Simulator) Done() bool {
	return s.terminated == len(s.processes)
}

// VirtualTime returns the current simulation clock in milliseconds
func (s *Simulator) VirtualTime() float64 {
	return s.virtualTime
}

// Statistics returns the live statistics collector
func (s *Simulator) Statistics() *Statistics {
	return s.stats
}

// Config returns the configuration the simulator was built with
func (s *Simulator) Config() Config {
	return s.config
}

// PendingRequests returns the number of requests queued at the scheduler
func (s *Simulator) PendingRequests() int {
	return s.scheduler.Pending()
}

// State returns a snapshot of the moving parts for UI display
func (s *Simulator) State() map[string]interface{} {
	processStates := make(map[string]string, len(s.processes))
	for _, pid := range s.pids {
		p := s.processes[pid]
		processStates[fmt.Sprintf("%d", pid)] = p.State.String()
	}
	return map[string]interface{}{
		"virtualTime":     s.virtualTime,
		"headTrack":       s.head.CurrentTrack,
		"headState":       s.head.State.String(),
		"cacheUsed":       s.cache.Len(),
		"cacheCapacity":   s.cache.Capacity(),
		"cacheCold":       s.cache.ColdLen(),
		"cacheHot":        s.cache.HotLen(),
		"pendingRequests": s.scheduler.Pending(),
		"runningPID":      s.running,
		"processes":       processStates,
		"done":            s.Done(),
	}
}

// Banner renders the pre-run configuration summary
func (s *Simulator) Banner() string {
	var b strings.Builder
	b.WriteString("=== Disk I/O Simulation ===\n")
	fmt.Fprintf(&b, "Scheduler:       %s\n", s.scheduler.Name())
	fmt.Fprintf(&b, "Scenario:        %s (%d processes)\n", s.config.Scenario, len(s.processes))
	fmt.Fprintf(&b, "Disk:            %d tracks x %d sectors, %d RPM\n",
		s.config.NumTracks, s.config.SectorsPerTrack, s.config.RPM)
	fmt.Fprintf(&b, "Seek time:       %.2f ms/track\n", s.config.SeekTimePerTrack)
	fmt.Fprintf(&b, "Rotation:        %.2f ms/rev (latency %.2f ms, transfer %.3f ms)\n",
		s.geometry.RotationPeriod(), s.geometry.RotationalLatency(), s.geometry.SectorTransferTime())
	fmt.Fprintf(&b, "Buffer cache:    %d blocks (hot segment cap %d)\n",
		s.config.TotalBuffers, s.config.MaxHotSegment)
	fmt.Fprintf(&b, "Quantum:         %.2f ms\n", s.config.Quantum)
	return b.String()
}

func (s *Simulator) processEvent(event Event) {
	switch e := event.(type) {
	case *ProcessStartEvent:
		s.processProcessStart(e)
	case *SyscallStartEvent:
		s.processSyscallStart(e)
	case *SyscallEndEvent:
		s.processSyscallEnd(e)
	case *CacheHitEvent:
		s.processCacheHit(e)
	case *CacheMissEvent:
		s.processCacheMiss(e)
	case *RequestIssuedEvent:
		s.processRequestIssued(e)
	case *SeekCompleteEvent:
		s.processSeekComplete(e)
	case *RotationCompleteEvent:
		s.processRotationComplete(e)
	case *TransferCompleteEvent:
		s.processTransferComplete(e)
	case *InterruptRaisedEvent:
		s.processInterruptRaised(e)
	case *RequestCompleteEvent:
		s.processRequestComplete(e)
	case *ProcessComputeEvent:
		s.processProcessCompute(e)
	case *QuantumExpiredEvent:
		s.processQuantumExpired(e)
	case *ProcessTerminatedEvent:
		s.processProcessTerminated(e)
	default:
		panic(fmt.Sprintf("unknown event type: %T", e))
	}
}

// scheduleNextProcess dispatches the head of the ready queue onto the CPU.
// Claiming the CPU happens here, not in the ProcessStartEvent handler, so two
// completions at the same timestamp cannot both dispatch.
func (s *Simulator) scheduleNextProcess() {
	if s.running != 0 {
		return
	}
	for len(s.readyQueue) > 0 {
		pid := s.readyQueue[0]
		s.readyQueue = append([]int(nil), s.readyQueue[1:]...)
		if s.processes[pid].State != StateReady {
			continue
		}
		s.running = pid
		s.queue.Push(NewProcessStartEvent(s.virtualTime, pid))
		return
	}
}

// startDiskOperation dispatches the scheduler's next request onto an idle head
func (s *Simulator) startDiskOperation() {
	if !s.head.Idle() {
		return
	}
	request := s.scheduler.Next(s.head.CurrentTrack)
	if request == nil {
		return
	}
	s.head.Dispatch(request)

	target := request.Track(s.geometry.SectorsPerTrack)
	seekTime := s.geometry.SeekTime(s.head.CurrentTrack, target)
	if distance := target - s.head.CurrentTrack; distance != 0 {
		if distance < 0 {
			distance = -distance
		}
		s.stats.RecordSeek(distance, seekTime)
		s.logf("Disk: seeking track %d -> %d (%.2f ms)", s.head.CurrentTrack, target, seekTime)
	}
	s.queue.Push(NewSeekCompleteEvent(s.virtualTime+seekTime, request))
}

func (s *Simulator) processProcessStart(e *ProcessStartEvent) {
	p := s.processes[e.PID()]
	p.State = StateRunning
	p.QuantumRemaining = s.config.Quantum
	s.logf("CPU: dispatching PID %d (quantum %.2f ms)", p.PID, p.QuantumRemaining)

	if p.ComputePending {
		// A disk request finished while this process was blocked; it still
		// owes the compute phase for that operation
		p.ComputePending = false
		s.queue.Push(NewProcessComputeEvent(s.virtualTime+s.config.ComputeTime, p.PID))
		return
	}

	op, ok := p.PeekOp()
	if !ok {
		s.queue.Push(NewProcessTerminatedEvent(s.virtualTime, p.PID))
		return
	}
	s.queue.Push(NewSyscallStartEvent(s.virtualTime, p.PID, op.Kind, op.Sector))
}

func (s *Simulator) processSyscallStart(e *SyscallStartEvent) {
	p := s.processes[e.PID()]
	s.logf("CPU: PID %d syscall %s sector %d", p.PID, e.Op(), e.Sector())

	block, hit := s.cache.Lookup(e.Sector())
	if hit {
		if e.Op() == RequestWrite {
			block.Dirty = true
		}
		s.queue.Push(NewCacheHitEvent(s.virtualTime, p.PID, e.Sector()))
	} else {
		s.queue.Push(NewCacheMissEvent(s.virtualTime, p.PID, e.Sector()))
	}

	p.ChargeCPU(s.config.SyscallTime)
	s.queue.Push(NewSyscallEndEvent(s.virtualTime+s.config.SyscallTime, p.PID, e.Op(), e.Sector(), !hit))
}

func (s *Simulator) processSyscallEnd(e *SyscallEndEvent) {
	p := s.processes[e.PID()]
	if !e.Miss() {
		// Served from the cache, move straight to the compute phase
		p.Advance()
		s.queue.Push(NewProcessComputeEvent(s.virtualTime+s.config.ComputeTime, p.PID))
		return
	}

	// Miss: the process blocks until the disk resolves the sector
	p.State = StateBlocked
	s.running = 0
	s.logf("CPU: PID %d blocked on sector %d", p.PID, e.Sector())

	request := &Request{PID: p.PID, Sector: e.Sector(), Kind: e.Op(), IssueTime: s.virtualTime}
	s.scheduler.Enqueue(request)
	s.queue.Push(NewRequestIssuedEvent(s.virtualTime, request))

	s.startDiskOperation()
	s.scheduleNextProcess()
}

func (s *Simulator) processCacheHit(e *CacheHitEvent) {
	s.stats.RecordCacheHit()
	s.logf("Buffer cache: HIT sector %d (PID %d)", e.Sector(), e.PID())
}

func (s *Simulator) processCacheMiss(e *CacheMissEvent) {
	s.stats.RecordCacheMiss()
	s.logf("Buffer cache: MISS sector %d (PID %d)", e.Sector(), e.PID())
}

func (s *Simulator) processRequestIssued(e *RequestIssuedEvent) {
	r := e.Request()
	s.logf("Scheduler[%s]: queued %s sector %d (PID %d, %d pending)",
		s.scheduler.Name(), r.Kind, r.Sector, r.PID, s.scheduler.Pending())
}

func (s *Simulator) processSeekComplete(e *SeekCompleteEvent) {
	request := e.Request()
	s.head.ArriveAt(request.Track(s.geometry.SectorsPerTrack))

	latency := s.geometry.RotationalLatency()
	s.stats.RecordRotation(latency)
	s.logf("Disk: head at track %d, rotating %.2f ms for sector %d",
		s.head.CurrentTrack, latency, request.Sector)
	s.queue.Push(NewRotationCompleteEvent(s.virtualTime+latency, request))
}

func (s *Simulator) processRotationComplete(e *RotationCompleteEvent) {
	request := e.Request()
	s.head.BeginTransfer()

	transfer := s.geometry.SectorTransferTime()
	s.stats.RecordTransfer(transfer)
	s.logf("Disk: transferring sector %d (%.3f ms)", request.Sector, transfer)
	s.queue.Push(NewTransferCompleteEvent(s.virtualTime+transfer, request))
}

func (s *Simulator) processTransferComplete(e *TransferCompleteEvent) {
	request := e.Request()
	s.logf("Disk: %s of sector %d done", request.Kind, request.Sector)
	s.queue.Push(NewInterruptRaisedEvent(s.virtualTime, request))
}

func (s *Simulator) processInterruptRaised(e *InterruptRaisedEvent) {
	// Interrupt handling steals CPU time from whoever is running
	if s.running != 0 {
		s.processes[s.running].ChargeCPU(s.config.InterruptTime)
	}
	s.logf("Disk: interrupt for sector %d (%.2f ms to handle)", e.Request().Sector, s.config.InterruptTime)
	s.queue.Push(NewRequestCompleteEvent(s.virtualTime+s.config.InterruptTime, e.Request()))
}

func (s *Simulator) processRequestComplete(e *RequestCompleteEvent) {
	request := e.Request()
	s.head.Release()

	// The block enters the cache only now that the disk resolved it
	if evicted, ok := s.cache.Insert(request.Sector, request.Kind == RequestWrite); ok {
		s.logf("Buffer cache: evicted sector %d (hot=%v, dirty=%v)", evicted.Sector, evicted.FromHot, evicted.Dirty)
	}

	s.stats.RecordRequestComplete(request.Kind, s.virtualTime-request.IssueTime)

	p := s.processes[request.PID]
	p.Advance()
	p.ComputePending = true
	p.State = StateReady
	s.readyQueue = append(s.readyQueue, p.PID)
	s.logf("CPU: PID %d unblocked (sector %d, waited %.2f ms)",
		p.PID, request.Sector, s.virtualTime-request.IssueTime)

	s.startDiskOperation()
	s.scheduleNextProcess()
}

func (s *Simulator) processProcessCompute(e *ProcessComputeEvent) {
	p := s.processes[e.PID()]
	p.ChargeCPU(s.config.ComputeTime)
	s.logf("CPU: PID %d processed data (%d/%d ops, quantum left %.2f ms)",
		p.PID, p.Completed(), p.TraceLen(), p.QuantumRemaining)

	if p.Finished() {
		s.queue.Push(NewProcessTerminatedEvent(s.virtualTime, p.PID))
		return
	}
	if p.QuantumRemaining <= 0 {
		s.queue.Push(NewQuantumExpiredEvent(s.virtualTime, p.PID))
		return
	}
	op, _ := p.PeekOp()
	s.queue.Push(NewSyscallStartEvent(s.virtualTime, p.PID, op.Kind, op.Sector))
}

func (s *Simulator) processQuantumExpired(e *QuantumExpiredEvent) {
	p := s.processes[e.PID()]
	p.State = StateReady
	s.running = 0
	s.readyQueue = append(s.readyQueue, p.PID)
	s.logf("CPU: PID %d preempted, requeued", p.PID)
	s.scheduleNextProcess()
}

func (s *Simulator) processProcessTerminated(e *ProcessTerminatedEvent) {
	p := s.processes[e.PID()]
	p.State = StateTerminated
	s.running = 0
	s.terminated++
	s.stats.RecordProcessTerminated(p.PID, s.virtualTime)
	s.logf("CPU: PID %d terminated (%d ops)", p.PID, p.TraceLen())
	s.scheduleNextProcess()
}

func (s *Simulator) logf(format string, args ...interface{}) {
	if s.LogEvent == nil {
		return
	}
	s.LogEvent(fmt.Sprintf("Time: %.2f ms | ", s.virtualTime) + fmt.Sprintf(format, args...))
}
