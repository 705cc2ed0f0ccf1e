package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/vidsweep/internal/retention"
)

var assumeYes bool

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <directory>",
		Short: "Remove or relocate lower-quality duplicate copies",
		Long: `Clean scans the directory, selects redundant copies under the chosen
policy and deletes them (or moves them with --move-to). Use --dry-run
to preview the result without touching anything.

Selection modes:
  keep_best      keep the highest quality copy (default)
  keep_smallest  keep the smallest file regardless of quality
  smart          keep near-equal quality copies that save space

Examples:
  vidsweep clean /media/Movies --dry-run
  vidsweep clean /media/Movies --mode smart
  vidsweep clean /media/TV --move-to /media/quarantine`,
		Args: cobra.ExactArgs(1),
		RunE: runClean,
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "selection mode: keep_best, keep_smallest, smart")
	cmd.Flags().StringVar(&moveTo, "move-to", "", "move selected files here instead of deleting")
	cmd.Flags().Float64Var(&minSimilarity, "min-similarity", 0, "fuzzy clustering threshold (0-1)")
	cmd.Flags().IntVar(&workers, "workers", 0, "metadata extraction workers")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	a, err := runAnalysis(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer a.log.Close()

	selected := a.engine.ApplySelection(a.cfg.Mode())
	if selected == 0 {
		fmt.Println("No duplicates found.")
		return nil
	}

	fmt.Printf("\nSelected %d files (%s) under %s policy.\n",
		selected, formatBytes(a.engine.SelectedBytes()), a.cfg.Mode())

	if !a.cfg.DryRun && !assumeYes {
		action := "DELETE"
		if a.cfg.DestinationDir != "" {
			action = "move"
		}
		fmt.Printf("This will %s %d files. Continue? [y/N]: ", action, selected)
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	executor := retention.New(a.engine.Sizes(), a.log)
	report := executor.Execute(a.engine.Selection(), a.cfg.DryRun, a.cfg.DestinationDir)
	a.engine.ReconcileGroups()

	printReport(report, a.cfg.DryRun)
	return nil
}

func printReport(report *retention.Report, dryRun bool) {
	fmt.Println("\n=== Retention Report ===")
	if dryRun {
		fmt.Printf("Would remove: %d files\n", len(report.Skipped))
	} else {
		if len(report.Deleted) > 0 {
			fmt.Printf("Deleted: %d files\n", len(report.Deleted))
		}
		if len(report.Moved) > 0 {
			fmt.Printf("Moved:   %d files\n", len(report.Moved))
		}
	}
	if len(report.Failed) > 0 {
		fmt.Printf("Failed:  %d files\n", len(report.Failed))
		for _, entry := range report.Failed {
			fmt.Printf("  %s: %s\n", entry.Path, entry.Reason)
		}
	}
	fmt.Printf("Space freed: %s\n", formatBytes(report.TotalFreedBytes))
}
