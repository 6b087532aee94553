package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func req(pid, sector int) *Request {
	return &Request{PID: pid, Sector: sector, Kind: RequestRead}
}

func TestFIFOSchedulerArrivalOrder(t *testing.T) {
	s := NewFIFOScheduler()
	require.Nil(t, s.Next(0))

	s.Enqueue(req(1, 5000))
	s.Enqueue(req(2, 100))
	s.Enqueue(req(3, 2500))
	require.Equal(t, 3, s.Pending())

	// Head position is irrelevant to FIFO
	require.Equal(t, 5000, s.Next(9999).Sector)
	require.Equal(t, 100, s.Next(0).Sector)
	require.Equal(t, 2500, s.Next(0).Sector)
	require.Nil(t, s.Next(0))
	require.Zero(t, s.Pending())
}

func TestNewSchedulerFactory(t *testing.T) {
	config := DefaultConfig()

	config.Scheduler = SchedulerFIFO
	s, err := NewScheduler(config)
	require.NoError(t, err)
	require.Equal(t, "FIFO", s.Name())

	config.Scheduler = SchedulerLOOK
	s, err = NewScheduler(config)
	require.NoError(t, err)
	require.Equal(t, "LOOK", s.Name())

	config.Scheduler = SchedulerNLOOK
	s, err = NewScheduler(config)
	require.NoError(t, err)
	require.Equal(t, "NLOOK", s.Name())

	config.Scheduler = SchedulerKind(42)
	_, err = NewScheduler(config)
	require.Error(t, err)
}

func TestSchedulerKindRoundTrip(t *testing.T) {
	for _, kind := range []SchedulerKind{SchedulerFIFO, SchedulerLOOK, SchedulerNLOOK} {
		parsed, err := ParseSchedulerKind(kind.String())
		require.NoError(t, err)
		require.Equal(t, kind, parsed)
	}

	_, err := ParseSchedulerKind("flook")
	require.Error(t, err)
}
