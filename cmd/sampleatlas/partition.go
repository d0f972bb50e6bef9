// Partition command: group classified runs by category.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-genomics/sampleatlas/internal/report"
	"github.com/mesh-genomics/sampleatlas/internal/table"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

var (
	partitionInFile string
	partitionOutDir string
)

var partitionCmd = &cobra.Command{
	Use:   "partition",
	Short: "Write per-category run accession lists from a classified table",
	Long: `Partition groups the run accessions of a classified table by top label
and writes one <Category>_runs.txt list per non-empty category. The
"Cell line" and "Cell_line" spellings fold into one partition.

Example:
  sampleatlas partition -i classified_metadata.tsv -o classification/`,
	RunE: runPartition,
}

func init() {
	partitionCmd.Flags().StringVarP(&partitionInFile, "input", "i", "", "classified metadata TSV (required)")
	partitionCmd.Flags().StringVarP(&partitionOutDir, "outdir", "o", "", "directory for the accession lists (required)")
	partitionCmd.MarkFlagRequired("input")
	partitionCmd.MarkFlagRequired("outdir")
}

func runPartition(cmd *cobra.Command, args []string) error {
	t, err := table.ReadFile(partitionInFile, table.ReadOptions{Comma: '\t'})
	if err != nil {
		return fmt.Errorf("read classified table: %w", err)
	}
	parts, err := report.Partition(t)
	if err != nil {
		return fmt.Errorf("partition runs: %w", err)
	}
	if err := os.MkdirAll(partitionOutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := report.WritePartitionLists(partitionOutDir, parts); err != nil {
		return fmt.Errorf("write partition lists: %w", err)
	}
	if flagJSON {
		counts := make(map[string]int, len(parts))
		for cat, accs := range parts {
			counts[cat] = len(accs)
		}
		return json.NewEncoder(os.Stdout).Encode(counts)
	}
	for _, cat := range types.Categories {
		if n := len(parts[cat]); n > 0 {
			fmt.Printf("%s: %d run(s)\n", cat, n)
		}
	}
	return nil
}
