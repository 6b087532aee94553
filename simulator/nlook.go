package simulator

// NLOOKScheduler is LOOK restricted to a frozen batch: at the start of each
// pass the pending set is snapshotted, and only requests in that snapshot are
// serviced during the pass. Requests arriving mid-pass are held back and
// become visible when the next pass begins. This bounds the sweep length so
// a steady stream of arrivals cannot extend a pass indefinitely.
type NLOOKScheduler struct {
	batch           []*Request // Frozen set serviced during the current pass
	waiting         []*Request // Arrivals held for the next pass
	sectorsPerTrack int
	directionUp     bool
}

// NewNLOOKScheduler creates an N-step-LOOK scheduler sweeping upward first
func NewNLOOKScheduler(sectorsPerTrack int) *NLOOKScheduler {
	return &NLOOKScheduler{
		batch:           make([]*Request, 0),
		waiting:         make([]*Request, 0),
		sectorsPerTrack: sectorsPerTrack,
		directionUp:     true,
	}
}

func (s *NLOOKScheduler) Name() string { return "NLOOK" }

func (s *NLOOKScheduler) Enqueue(request *Request) {
	s.waiting = append(s.waiting, request)
}

func (s *NLOOKScheduler) Next(currentTrack int) *Request {
	if len(s.batch) == 0 {
		if len(s.waiting) == 0 {
			return nil
		}
		// Start a new pass: freeze everything that has arrived so far.
		s.batch = s.waiting
		s.waiting = make([]*Request, 0)
	}

	idx, reversed := sweepSelect(s.batch, currentTrack, s.directionUp, s.sectorsPerTrack)
	if reversed {
		s.directionUp = !s.directionUp
	}

	request := s.batch[idx]
	s.batch = append(s.batch[:idx:idx], s.batch[idx+1:]...)
	return request
}

func (s *NLOOKScheduler) Pending() int { return len(s.batch) + len(s.waiting) }

// BatchRemaining returns how many requests are left in the current pass
func (s *NLOOKScheduler) BatchRemaining() int { return len(s.batch) }
