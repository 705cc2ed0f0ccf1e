package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Scan a directory and report duplicate statistics",
		Long: `Scan walks the directory tree, extracts metadata from every video file
with ffprobe and reports how many duplicate groups were found.

Examples:
  vidsweep scan /media/Movies
  vidsweep scan /media/TV --min-similarity 0.90`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	cmd.Flags().Float64Var(&minSimilarity, "min-similarity", 0, "fuzzy clustering threshold (0-1)")
	cmd.Flags().IntVar(&workers, "workers", 0, "metadata extraction workers")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := runAnalysis(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer a.log.Close()

	groups := a.engine.Groups()

	var duplicateFiles int
	var reclaimable int64
	for _, cluster := range groups {
		duplicateFiles += len(cluster) - 1
		for _, r := range cluster[1:] {
			reclaimable += r.SizeBytes
		}
	}

	fmt.Printf("\nScanned:    %d files (%d probed, %d failed)\n", a.filesFound, a.filesProbed, a.filesFailed)
	fmt.Printf("Duplicates: %d groups, %d redundant files\n", len(groups), duplicateFiles)
	fmt.Printf("Reclaimable: %s\n", formatBytes(reclaimable))

	if len(groups) > 0 {
		fmt.Println("\nRun 'vidsweep duplicates' to inspect groups or 'vidsweep clean' to remove them.")
	}
	return nil
}
