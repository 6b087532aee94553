package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "disksim",
	Short: "Discrete-event simulator of an OS disk I/O subsystem",
	Long: `disksim models processes issuing read/write syscalls against a rotating
disk behind a two-segment LRU buffer cache, with a pluggable I/O scheduler
(FIFO, LOOK or N-step-LOOK). Runs are fully deterministic: the same
configuration always produces the same event sequence and statistics.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
