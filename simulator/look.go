package simulator

// LOOKScheduler services the nearest pending request in the current sweep
// direction and reverses only when nothing lies ahead. Requests arriving
// mid-sweep join the current pass if their track is still ahead of the head.
//
// A starvation guard bounds consecutive services of a single track: after
// maxTrackAccesses selections with the head parked on the same track, the
// next selection is forced onto a different track when one is pending.
type LOOKScheduler struct {
	pending          []*Request
	sectorsPerTrack  int
	directionUp      bool
	maxTrackAccesses int
	lastTrack        int
	sameTrackCount   int
}

// NewLOOKScheduler creates a LOOK scheduler sweeping upward first
func NewLOOKScheduler(sectorsPerTrack, maxTrackAccesses int) *LOOKScheduler {
	return &LOOKScheduler{
		pending:          make([]*Request, 0),
		sectorsPerTrack:  sectorsPerTrack,
		directionUp:      true,
		maxTrackAccesses: maxTrackAccesses,
		lastTrack:        -1,
	}
}

func (s *LOOKScheduler) Name() string { return "LOOK" }

func (s *LOOKScheduler) Enqueue(request *Request) {
	s.pending = append(s.pending, request)
}

func (s *LOOKScheduler) Next(currentTrack int) *Request {
	if len(s.pending) == 0 {
		return nil
	}

	if s.lastTrack == currentTrack {
		s.sameTrackCount++
	} else {
		s.sameTrackCount = 0
	}
	s.lastTrack = currentTrack

	if s.sameTrackCount >= s.maxTrackAccesses {
		if idx := s.pickOffTrack(currentTrack); idx >= 0 {
			s.sameTrackCount = 0
			request := s.pending[idx]
			s.pending = append(s.pending[:idx:idx], s.pending[idx+1:]...)
			return request
		}
	}

	idx, reversed := sweepSelect(s.pending, currentTrack, s.directionUp, s.sectorsPerTrack)
	if reversed {
		s.directionUp = !s.directionUp
		s.sameTrackCount = 0
	}

	request := s.pending[idx]
	s.pending = append(s.pending[:idx:idx], s.pending[idx+1:]...)
	return request
}

func (s *LOOKScheduler) Pending() int { return len(s.pending) }

// DirectionUp reports the current sweep direction (true = increasing tracks)
func (s *LOOKScheduler) DirectionUp() bool { return s.directionUp }

// pickOffTrack returns the index of the pending request on the track nearest
// to currentTrack but not equal to it, or -1 when every pending request sits
// on the current track
func (s *LOOKScheduler) pickOffTrack(currentTrack int) int {
	best := -1
	bestDist := 0
	for i, req := range s.pending {
		track := req.Track(s.sectorsPerTrack)
		if track == currentTrack {
			continue
		}
		dist := track - currentTrack
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

// sweepSelect picks the nearest request in the given direction, reversing
// when nothing lies ahead. Returns the index of the selection and whether
// the direction had to reverse. Ties on the same track resolve toward the
// sector nearest the sweep front, then toward the earliest arrival.
// Callers guarantee pending is non-empty.
func sweepSelect(pending []*Request, currentTrack int, directionUp bool, sectorsPerTrack int) (idx int, reversed bool) {
	idx = pickAhead(pending, currentTrack, directionUp, sectorsPerTrack)
	if idx >= 0 {
		return idx, false
	}
	// Nothing ahead: reverse and retake the nearest in the new direction.
	idx = pickAhead(pending, currentTrack, !directionUp, sectorsPerTrack)
	return idx, true
}

// pickAhead returns the index of the nearest request whose track lies at or
// beyond currentTrack in the given direction, or -1 if none does
func pickAhead(pending []*Request, currentTrack int, directionUp bool, sectorsPerTrack int) int {
	best := -1
	for i, req := range pending {
		track := req.Track(sectorsPerTrack)
		if directionUp {
			if track < currentTrack {
				continue
			}
			if best < 0 || track < pending[best].Track(sectorsPerTrack) ||
				(track == pending[best].Track(sectorsPerTrack) && req.Sector < pending[best].Sector) {
				best = i
			}
		} else {
			if track > currentTrack {
				continue
			}
			if best < 0 || track > pending[best].Track(sectorsPerTrack) ||
				(track == pending[best].Track(sectorsPerTrack) && req.Sector > pending[best].Sector) {
				best = i
			}
		}
	}
	return best
}
