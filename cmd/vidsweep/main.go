package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"

	cfgFile       string
	verbose       bool
	dryRun        bool
	modeFlag      string
	moveTo        string
	minSimilarity float64
	workers       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vidsweep",
		Short: "Find and clean up duplicate video files",
		Long: `vidsweep scans a directory tree for video files that contain the same
movie or episode at different quality levels, ranks each group by
quality and can delete or relocate the lower-quality copies.

Metadata is extracted with ffprobe; nothing is persisted between runs.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/vidsweep/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "preview changes without touching files")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newDuplicatesCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vidsweep version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vidsweep %s\n", version)
		},
	}
}
