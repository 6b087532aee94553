package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testSectorsPerTrack = 500

// sectorOnTrack builds a sector address on the given track
func sectorOnTrack(track, offset int) int {
	return track*testSectorsPerTrack + offset
}

func TestLOOKSweepsUpwardFirst(t *testing.T) {
	s := NewLOOKScheduler(testSectorsPerTrack, 10)

	s.Enqueue(req(1, sectorOnTrack(50, 0)))
	s.Enqueue(req(2, sectorOnTrack(20, 0)))
	s.Enqueue(req(3, sectorOnTrack(80, 0)))
	s.Enqueue(req(4, sectorOnTrack(5, 0)))

	// Head at track 10, sweeping up: 20, 50, 80, then reverse to 5
	require.Equal(t, sectorOnTrack(20, 0), s.Next(10).Sector)
	require.Equal(t, sectorOnTrack(50, 0), s.Next(20).Sector)
	require.Equal(t, sectorOnTrack(80, 0), s.Next(50).Sector)
	require.True(t, s.DirectionUp())

	require.Equal(t, sectorOnTrack(5, 0), s.Next(80).Sector)
	require.False(t, s.DirectionUp(), "direction reverses when nothing lies ahead")
	require.Nil(t, s.Next(5))
}

func TestLOOKTakesCurrentTrackInEitherDirection(t *testing.T) {
	s := NewLOOKScheduler(testSectorsPerTrack, 10)
	s.Enqueue(req(1, sectorOnTrack(10, 3)))

	// A request on the current track is "ahead" regardless of direction
	require.Equal(t, sectorOnTrack(10, 3), s.Next(10).Sector)
}

func TestLOOKMidSweepArrivalJoinsPass(t *testing.T) {
	s := NewLOOKScheduler(testSectorsPerTrack, 10)
	s.Enqueue(req(1, sectorOnTrack(10, 0)))
	s.Enqueue(req(2, sectorOnTrack(30, 0)))

	require.Equal(t, sectorOnTrack(10, 0), s.Next(0).Sector)

	// Arrives after the sweep started, but its track is still ahead
	s.Enqueue(req(3, sectorOnTrack(20, 0)))
	require.Equal(t, sectorOnTrack(20, 0), s.Next(10).Sector)
	require.Equal(t, sectorOnTrack(30, 0), s.Next(20).Sector)
}

func TestLOOKBehindArrivalWaitsForReversal(t *testing.T) {
	s := NewLOOKScheduler(testSectorsPerTrack, 10)
	s.Enqueue(req(1, sectorOnTrack(40, 0)))

	require.Equal(t, sectorOnTrack(40, 0), s.Next(30).Sector)

	// Behind the head while sweeping up: not serviced until reversal
	s.Enqueue(req(2, sectorOnTrack(10, 0)))
	s.Enqueue(req(3, sectorOnTrack(60, 0)))
	require.Equal(t, sectorOnTrack(60, 0), s.Next(40).Sector)
	require.Equal(t, sectorOnTrack(10, 0), s.Next(60).Sector)
	require.False(t, s.DirectionUp())
}

func TestLOOKSameTrackSectorOrder(t *testing.T) {
	s := NewLOOKScheduler(testSectorsPerTrack, 10)
	s.Enqueue(req(1, sectorOnTrack(10, 400)))
	s.Enqueue(req(2, sectorOnTrack(10, 100)))

	// Sweeping up, the lower sector on the tied track goes first
	require.Equal(t, sectorOnTrack(10, 100), s.Next(0).Sector)
	require.Equal(t, sectorOnTrack(10, 400), s.Next(10).Sector)
}

func TestLOOKStarvationGuard(t *testing.T) {
	s := NewLOOKScheduler(testSectorsPerTrack, 2)

	// Plenty of work on track 7, one lone request on track 2
	for i := 0; i < 5; i++ {
		s.Enqueue(req(1, sectorOnTrack(7, i)))
	}
	s.Enqueue(req(2, sectorOnTrack(2, 0)))

	require.Equal(t, 7, s.Next(7).Track(testSectorsPerTrack))
	require.Equal(t, 7, s.Next(7).Track(testSectorsPerTrack))

	// Two consecutive services with the head parked on track 7: the guard
	// now forces the off-track request
	require.Equal(t, 2, s.Next(7).Track(testSectorsPerTrack))

	// Back to normal sweeping afterwards
	require.Equal(t, 7, s.Next(2).Track(testSectorsPerTrack))
}

func TestLOOKGuardNoOpWhenSingleTrack(t *testing.T) {
	s := NewLOOKScheduler(testSectorsPerTrack, 1)
	for i := 0; i < 4; i++ {
		s.Enqueue(req(1, sectorOnTrack(3, i)))
	}

	// Everything is on one track; the guard has nowhere to redirect
	for i := 0; i < 4; i++ {
		r := s.Next(3)
		require.NotNil(t, r)
		require.Equal(t, 3, r.Track(testSectorsPerTrack))
	}
	require.Zero(t, s.Pending())
}
