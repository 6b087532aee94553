package simulator

import "fmt"

// DiskGeometry is the pure timing model of a rotating disk. All methods are
// deterministic functions of the configured parameters; inputs are validated
// by the configuration layer before a geometry is ever constructed.
type DiskGeometry struct {
	NumTracks        int
	SectorsPerTrack  int
	SeekTimePerTrack float64 // ms per track of head movement
	RPM              int
}

// NewDiskGeometry creates the timing model from validated configuration
func NewDiskGeometry(config Config) DiskGeometry {
	return DiskGeometry{
		NumTracks:        config.NumTracks,
		SectorsPerTrack:  config.SectorsPerTrack,
		SeekTimePerTrack: config.SeekTimePerTrack,
		RPM:              config.RPM,
	}
}

// TotalSectors returns the number of addressable sectors
func (g DiskGeometry) TotalSectors() int {
	return g.NumTracks * g.SectorsPerTrack
}

// Track returns the track a sector address lives on
func (g DiskGeometry) Track(sector int) int {
	return sector / g.SectorsPerTrack
}

// Offset returns the sector's position within its track
func (g DiskGeometry) Offset(sector int) int {
	return sector % g.SectorsPerTrack
}

// RotationPeriod returns the time of one full platter revolution in ms
func (g DiskGeometry) RotationPeriod() float64 {
	return 60000.0 / float64(g.RPM)
}

// RotationalLatency returns the modeled average wait for the target sector:
// half a revolution, independent of the exact offset. This simplification is
// deliberate and must stay fixed so runs under different schedulers remain
// comparable.
func (g DiskGeometry) RotationalLatency() float64 {
	return g.RotationPeriod() / 2
}

// SectorTransferTime returns the time to pass one sector under the head
func (g DiskGeometry) SectorTransferTime() float64 {
	return g.RotationPeriod() / float64(g.SectorsPerTrack)
}

// SeekTime returns the head movement time between two tracks. Zero distance
// is a zero-time no-op, not an error.
func (g DiskGeometry) SeekTime(fromTrack, toTrack int) float64 {
	distance := toTrack - fromTrack
	if distance < 0 {
		distance = -distance
	}
	return float64(distance) * g.SeekTimePerTrack
}

// HeadState tracks which phase of a request the disk head is in
type HeadState int

const (
	HeadIdle HeadState = iota
	HeadSeeking
	HeadRotating
	HeadTransferring
)

func (s HeadState) String() string {
	switch s {
	case HeadIdle:
		return "idle"
	case HeadSeeking:
		return "seeking"
	case HeadRotating:
		return "rotating"
	case HeadTransferring:
		return "transferring"
	default:
		return "unknown"
	}
}

// DiskHead holds the head position and the single request in flight.
// It is mutated only by the simulator's event handlers: dispatch moves it
// Idle -> Seeking -> Rotating -> Transferring and back to Idle when the
// completion interrupt has been handled.
type DiskHead struct {
	CurrentTrack int
	State        HeadState
	current      *Request
}

// NewDiskHead creates an idle head parked on track 0
func NewDiskHead() *DiskHead {
	return &DiskHead{CurrentTrack: 0, State: HeadIdle}
}

// Idle reports whether the head can accept a new request
func (h *DiskHead) Idle() bool {
	return h.State == HeadIdle
}

// Dispatch accepts a request and begins seeking. Dispatching onto a busy
// head is an internal invariant violation.
func (h *DiskHead) Dispatch(request *Request) {
	if !h.Idle() {
		panic(fmt.Sprintf("disk head dispatch while %s (sector %d in flight)", h.State, h.current.Sector))
	}
	h.current = request
	h.State = HeadSeeking
}

// Current returns the request in flight, or nil when idle
func (h *DiskHead) Current() *Request {
	return h.current
}

// ArriveAt records the end of the seek phase at the target track
func (h *DiskHead) ArriveAt(track int) {
	h.CurrentTrack = track
	h.State = HeadRotating
}

// BeginTransfer records the end of the rotational wait
func (h *DiskHead) BeginTransfer() {
	h.State = HeadTransferring
}

// Release finishes the in-flight request and returns the head to idle
func (h *DiskHead) Release() *Request {
	request := h.current
	h.current = nil
	h.State = HeadIdle
	return request
}
