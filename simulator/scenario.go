package simulator

import (
	"fmt"
	"math/rand"
)

// randomSeed fixes the random scenario so repeated runs produce identical
// workloads. Determinism across runs is part of the contract.
const randomSeed = 42

// defaultTraces holds the hand-picked mixed workload. Processes beyond the
// defined set reuse traces round-robin.
var defaultTraces = [][]Operation{
	{
		{Kind: RequestRead, Sector: 1250},
		{Kind: RequestWrite, Sector: 1700},
		{Kind: RequestRead, Sector: 1250},
		{Kind: RequestRead, Sector: 500},
	},
	{
		{Kind: RequestRead, Sector: 5000},
		{Kind: RequestRead, Sector: 5100},
		{Kind: RequestWrite, Sector: 3000},
	},
	{
		{Kind: RequestRead, Sector: 2500},
		{Kind: RequestWrite, Sector: 2600},
		{Kind: RequestRead, Sector: 2500},
	},
}

// cacheTestTraces is a locality-heavy workload with many repeat references,
// built to exercise hit/miss accounting and hot-segment promotion.
var cacheTestTraces = [][]Operation{
	{
		{Kind: RequestRead, Sector: 100},
		{Kind: RequestRead, Sector: 200},
		{Kind: RequestRead, Sector: 100},
		{Kind: RequestRead, Sector: 200},
		{Kind: RequestRead, Sector: 300},
		{Kind: RequestRead, Sector: 100},
		{Kind: RequestWrite, Sector: 200},
		{Kind: RequestRead, Sector: 100},
	},
	{
		{Kind: RequestRead, Sector: 500},
		{Kind: RequestRead, Sector: 600},
		{Kind: RequestRead, Sector: 500},
		{Kind: RequestRead, Sector: 600},
		{Kind: RequestRead, Sector: 500},
	},
	{
		{Kind: RequestRead, Sector: 1000},
		{Kind: RequestWrite, Sector: 1000},
		{Kind: RequestRead, Sector: 1100},
		{Kind: RequestRead, Sector: 1000},
		{Kind: RequestRead, Sector: 1100},
	},
}

// BuildScenario constructs the process set for the configured workload.
// PIDs start at 1.
func BuildScenario(config Config) ([]*Process, error) {
	switch config.Scenario {
	case "default":
		return processesFromTraces(defaultTraces, config.NumProcesses), nil
	case "cache-test":
		return processesFromTraces(cacheTestTraces, config.NumProcesses), nil
	case "sequential":
		return buildSequential(config), nil
	case "random":
		return buildRandom(config), nil
	default:
		return nil, ErrInvalidConfig(fmt.Sprintf("unknown scenario: %s", config.Scenario))
	}
}

func processesFromTraces(traces [][]Operation, numProcesses int) []*Process {
	processes := make([]*Process, 0, numProcesses)
	for i := 0; i < numProcesses; i++ {
		trace := traces[i%len(traces)]
		processes = append(processes, NewProcess(i+1, trace))
	}
	return processes
}

// buildSequential gives each process a contiguous run of sectors starting at a
// distinct base, alternating reads and writes.
func buildSequential(config Config) []*Process {
	processes := make([]*Process, 0, config.NumProcesses)
	for i := 0; i < config.NumProcesses; i++ {
		start := 1000 + i*2000
		trace := make([]Operation, 0, 10)
		for j := 0; j < 10; j++ {
			kind := RequestRead
			if j%2 != 0 {
				kind = RequestWrite
			}
			trace = append(trace, Operation{Kind: kind, Sector: start + j*100})
		}
		processes = append(processes, NewProcess(i+1, trace))
	}
	return processes
}

// buildRandom scatters requests across the whole disk with a fixed seed.
func buildRandom(config Config) []*Process {
	rng := rand.New(rand.NewSource(randomSeed))
	totalSectors := config.NumTracks * config.SectorsPerTrack
	processes := make([]*Process, 0, config.NumProcesses)
	for i := 0; i < config.NumProcesses; i++ {
		trace := make([]Operation, 0, 15)
		for j := 0; j < 15; j++ {
			kind := RequestRead
			if rng.Intn(100) < 30 {
				kind = RequestWrite
			}
			trace = append(trace, Operation{Kind: kind, Sector: rng.Intn(totalSectors)})
		}
		processes = append(processes, NewProcess(i+1, trace))
	}
	return processes
}
