package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Nomadcxx/vidsweep/internal/media"
)

func newDuplicatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicates <directory>",
		Short: "List duplicate groups ranked by quality",
		Long: `Duplicates scans the directory and prints every duplicate group with
its members ordered best-first, including how each copy compares to the
best one.

Examples:
  vidsweep duplicates /media/Movies
  vidsweep duplicates /media/TV --min-similarity 0.90`,
		Args: cobra.ExactArgs(1),
		RunE: runDuplicates,
	}

	cmd.Flags().Float64Var(&minSimilarity, "min-similarity", 0, "fuzzy clustering threshold (0-1)")
	cmd.Flags().IntVar(&workers, "workers", 0, "metadata extraction workers")

	return cmd
}

func runDuplicates(cmd *cobra.Command, args []string) error {
	a, err := runAnalysis(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer a.log.Close()

	groups := a.engine.Groups()
	if len(groups) == 0 {
		fmt.Println("No duplicates found.")
		return nil
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		fmt.Printf("\n%s\n", label)
		printCluster(groups[label])
	}

	return nil
}

func printCluster(cluster []*media.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"", "Resolution", "Bitrate", "Codec", "Score", "Size", "Quality vs Best", "Path"})

	for _, r := range cluster {
		marker := ""
		if r.IsHighestQuality {
			marker = "KEEP"
		}
		quality := "-"
		if c := r.ComparedToBest; c != nil {
			quality = fmt.Sprintf("%.0f%%", c.QualityPercent)
		}
		t.AppendRow(table.Row{
			marker,
			r.Resolution,
			r.Bitrate,
			r.Codec,
			fmt.Sprintf("%.0f", r.QualityScore),
			formatBytes(r.SizeBytes),
			quality,
			r.Path,
		})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
}
