package simulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runToCompletion(t *testing.T, config Config) (*Simulator, *Statistics) {
	t.Helper()
	sim, err := NewSimulator(config)
	require.NoError(t, err)
	stats := sim.Run()
	require.True(t, sim.Done(), "every process must terminate")
	return sim, stats
}

func TestSimulatorDefaultScenarioCompletes(t *testing.T) {
	config := DefaultConfig()
	sim, stats := runToCompletion(t, config)

	require.Greater(t, stats.TotalTime, 0.0)
	require.Len(t, stats.CompletionTimes, config.NumProcesses)
	require.Greater(t, stats.TotalRequests, 0)
	require.Equal(t, stats.TotalRequests, stats.ReadRequests+stats.WriteRequests)
	require.Zero(t, sim.PendingRequests(), "no requests left at the scheduler")

	// Every trace operation performed at least one cache lookup
	require.GreaterOrEqual(t, stats.CacheHits+stats.CacheMisses, 4+3)
}

func TestSimulatorAllSchedulers(t *testing.T) {
	for _, kind := range []SchedulerKind{SchedulerFIFO, SchedulerLOOK, SchedulerNLOOK} {
		t.Run(kind.String(), func(t *testing.T) {
			config := DefaultConfig()
			config.Scheduler = kind
			config.NumProcesses = 3
			_, stats := runToCompletion(t, config)
			require.Len(t, stats.CompletionTimes, 3)
		})
	}
}

func TestSimulatorAllScenarios(t *testing.T) {
	for _, scenario := range KnownScenarios {
		t.Run(scenario, func(t *testing.T) {
			config := DefaultConfig()
			config.Scenario = scenario
			config.NumProcesses = 3
			_, stats := runToCompletion(t, config)
			require.Greater(t, stats.TotalRequests, 0)
		})
	}
}

// Two runs with the same configuration must produce byte-identical event logs
// and identical statistics.
func TestSimulatorDeterminism(t *testing.T) {
	run := func() ([]string, *Statistics) {
		config := DefaultConfig()
		config.Scenario = "random"
		config.Scheduler = SchedulerLOOK
		config.NumProcesses = 3

		sim, err := NewSimulator(config)
		require.NoError(t, err)
		var log []string
		sim.LogEvent = func(msg string) { log = append(log, msg) }
		return log, sim.Run()
	}

	logA, statsA := run()
	logB, statsB := run()

	require.Equal(t, logA, logB)
	require.Equal(t, statsA, statsB)
}

func TestSimulatorCacheTestScenarioHits(t *testing.T) {
	config := DefaultConfig()
	config.Scenario = "cache-test"
	config.NumProcesses = 3
	_, stats := runToCompletion(t, config)

	// The workload is built around repeat references; with ten buffers and
	// at most eight distinct sectors they all hit
	require.Greater(t, stats.CacheHits, 0)
	require.Greater(t, stats.HitRate, 0.0)
}

func TestSimulatorSingleBufferLowersHitRate(t *testing.T) {
	base := DefaultConfig()
	base.Scenario = "cache-test"
	base.NumProcesses = 1

	_, ample := runToCompletion(t, base)

	tiny := base
	tiny.TotalBuffers = 1
	_, starved := runToCompletion(t, tiny)

	require.Less(t, starved.HitRate, ample.HitRate,
		"alternating sectors through one buffer must thrash")
}

func TestSimulatorTinyQuantumStillCompletes(t *testing.T) {
	config := DefaultConfig()
	config.Quantum = 0.1 // expires after nearly every operation
	config.NumProcesses = 3
	_, stats := runToCompletion(t, config)
	require.Len(t, stats.CompletionTimes, 3)
}

func TestSimulatorSeekAccounting(t *testing.T) {
	config := DefaultConfig()
	config.NumProcesses = 2
	_, stats := runToCompletion(t, config)

	require.Greater(t, stats.SeekCount, 0)
	require.Greater(t, stats.TotalSeekDistance, 0)
	// Linear model: total time = distance * per-track cost
	require.InDelta(t, float64(stats.TotalSeekDistance)*config.SeekTimePerTrack,
		stats.TotalSeekTime, 1e-6)
}

func TestSimulatorWaitTimesPositive(t *testing.T) {
	config := DefaultConfig()
	_, stats := runToCompletion(t, config)

	require.Greater(t, stats.AvgWaitTime, 0.0)
	require.GreaterOrEqual(t, stats.MaxWaitTime, stats.AvgWaitTime)
}

func TestSimulatorBanner(t *testing.T) {
	config := DefaultConfig()
	config.Scheduler = SchedulerLOOK
	sim, err := NewSimulator(config)
	require.NoError(t, err)

	banner := sim.Banner()
	require.True(t, strings.Contains(banner, "LOOK"))
	require.True(t, strings.Contains(banner, "7500 RPM"))
}

func TestSimulatorRejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.RPM = 0
	_, err := NewSimulator(config)
	require.Error(t, err)
}
