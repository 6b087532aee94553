package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskGeometryTiming(t *testing.T) {
	config := DefaultConfig() // 10000 tracks x 500 sectors, 7500 RPM, 0.5 ms/track
	g := NewDiskGeometry(config)

	// 7500 RPM -> 8 ms per revolution
	require.InDelta(t, 8.0, g.RotationPeriod(), 1e-9)
	require.InDelta(t, 4.0, g.RotationalLatency(), 1e-9)
	require.InDelta(t, 0.016, g.SectorTransferTime(), 1e-9)
	require.Equal(t, 5000000, g.TotalSectors())
}

func TestDiskGeometrySeekTime(t *testing.T) {
	config := DefaultConfig()
	g := NewDiskGeometry(config)

	require.InDelta(t, 1.0, g.SeekTime(10, 12), 1e-9)
	require.InDelta(t, 1.0, g.SeekTime(12, 10), 1e-9, "seek time is symmetric")
	require.Zero(t, g.SeekTime(42, 42))

	// Linear in distance
	require.InDelta(t, 2*g.SeekTime(0, 100), g.SeekTime(0, 200), 1e-9)
}

func TestDiskGeometryAddressing(t *testing.T) {
	config := DefaultConfig()
	g := NewDiskGeometry(config)

	require.Equal(t, 0, g.Track(0))
	require.Equal(t, 0, g.Track(499))
	require.Equal(t, 1, g.Track(500))
	require.Equal(t, 2, g.Track(1250))
	require.Equal(t, 250, g.Offset(1250))
}

func TestDiskHeadLifecycle(t *testing.T) {
	h := NewDiskHead()
	require.True(t, h.Idle())
	require.Equal(t, 0, h.CurrentTrack)
	require.Nil(t, h.Current())

	req := &Request{PID: 1, Sector: 1250, Kind: RequestRead}
	h.Dispatch(req)
	require.False(t, h.Idle())
	require.Equal(t, HeadSeeking, h.State)
	require.Equal(t, req, h.Current())

	h.ArriveAt(2)
	require.Equal(t, 2, h.CurrentTrack)
	require.Equal(t, HeadRotating, h.State)

	h.BeginTransfer()
	require.Equal(t, HeadTransferring, h.State)

	released := h.Release()
	require.Equal(t, req, released)
	require.True(t, h.Idle())
	require.Nil(t, h.Current())
	require.Equal(t, 2, h.CurrentTrack, "head stays on the track it finished at")
}

func TestDiskHeadDoubleDispatchPanics(t *testing.T) {
	h := NewDiskHead()
	h.Dispatch(&Request{PID: 1, Sector: 100})
	require.Panics(t, func() {
		h.Dispatch(&Request{PID: 2, Sector: 200})
	})
}
