package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ovasyliv/disksim/simulator"
)

var runFlags struct {
	scheduler        string
	scenario         string
	processes        int
	quantum          float64
	buffers          int
	maxHotSegment    int
	tracks           int
	sectors          int
	rpm              int
	seekTime         float64
	syscallTime      float64
	interruptTime    float64
	computeTime      float64
	maxTrackAccesses int
	verbose          bool
	output           string
	jsonStats        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation to completion and print statistics",
	Long: `Runs the configured workload against the selected I/O scheduler and
prints the final statistics. With --verbose every simulation event is
logged as it fires; --output redirects all output to a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig()
		if err != nil {
			return err
		}

		out := io.Writer(os.Stdout)
		if runFlags.output != "" {
			f, err := os.Create(runFlags.output)
			if err != nil {
				return fmt.Errorf("opening output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		sim, err := simulator.NewSimulator(config)
		if err != nil {
			return err
		}
		if runFlags.verbose {
			sim.LogEvent = func(msg string) {
				fmt.Fprintln(out, msg)
			}
		}

		fmt.Fprintln(out, sim.Banner())
		stats := sim.Run()

		if runFlags.jsonStats {
			data, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintln(out, stats.Report())
		return nil
	},
}

// buildConfig assembles and validates the configuration from flags
func buildConfig() (simulator.Config, error) {
	config := simulator.DefaultConfig()

	scheduler, err := simulator.ParseSchedulerKind(runFlags.scheduler)
	if err != nil {
		return config, err
	}
	config.Scheduler = scheduler
	config.Scenario = runFlags.scenario
	config.NumProcesses = runFlags.processes
	config.Quantum = runFlags.quantum
	config.TotalBuffers = runFlags.buffers
	config.MaxHotSegment = runFlags.maxHotSegment
	config.NumTracks = runFlags.tracks
	config.SectorsPerTrack = runFlags.sectors
	config.RPM = runFlags.rpm
	config.SeekTimePerTrack = runFlags.seekTime
	config.SyscallTime = runFlags.syscallTime
	config.InterruptTime = runFlags.interruptTime
	config.ComputeTime = runFlags.computeTime
	config.MaxTrackAccesses = runFlags.maxTrackAccesses
	config.Verbose = runFlags.verbose
	config.OutputFile = runFlags.output

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func init() {
	defaults := simulator.DefaultConfig()

	runCmd.Flags().StringVar(&runFlags.scheduler, "scheduler", "", "I/O scheduler: fifo, look or nlook (required)")
	runCmd.Flags().StringVar(&runFlags.scenario, "scenario", defaults.Scenario, "Workload: default, sequential, random or cache-test")
	runCmd.Flags().IntVar(&runFlags.processes, "processes", defaults.NumProcesses, "Number of simulated processes")
	runCmd.Flags().Float64Var(&runFlags.quantum, "quantum", defaults.Quantum, "CPU time slice in ms")
	runCmd.Flags().IntVar(&runFlags.buffers, "buffers", defaults.TotalBuffers, "Buffer cache capacity in blocks")
	runCmd.Flags().IntVar(&runFlags.maxHotSegment, "max-hot-segment", defaults.MaxHotSegment, "Cap on the cache's hot segment")
	runCmd.Flags().IntVar(&runFlags.tracks, "tracks", defaults.NumTracks, "Tracks on the disk")
	runCmd.Flags().IntVar(&runFlags.sectors, "sectors-per-track", defaults.SectorsPerTrack, "Sectors per track")
	runCmd.Flags().IntVar(&runFlags.rpm, "rpm", defaults.RPM, "Platter rotation speed")
	runCmd.Flags().Float64Var(&runFlags.seekTime, "seek-time", defaults.SeekTimePerTrack, "Seek cost per track in ms")
	runCmd.Flags().Float64Var(&runFlags.syscallTime, "syscall-time", defaults.SyscallTime, "CPU cost of a read/write syscall in ms")
	runCmd.Flags().Float64Var(&runFlags.interruptTime, "interrupt-time", defaults.InterruptTime, "CPU cost of interrupt handling in ms")
	runCmd.Flags().Float64Var(&runFlags.computeTime, "compute-time", defaults.ComputeTime, "CPU cost of processing one block in ms")
	runCmd.Flags().IntVar(&runFlags.maxTrackAccesses, "max-track-accesses", defaults.MaxTrackAccesses, "LOOK starvation guard threshold")
	runCmd.Flags().BoolVarP(&runFlags.verbose, "verbose", "v", false, "Log every simulation event")
	runCmd.Flags().StringVarP(&runFlags.output, "output", "o", "", "Write output to a file instead of stdout")
	runCmd.Flags().BoolVar(&runFlags.jsonStats, "json", false, "Emit final statistics as JSON")
	runCmd.MarkFlagRequired("scheduler")

	rootCmd.AddCommand(runCmd)
}
