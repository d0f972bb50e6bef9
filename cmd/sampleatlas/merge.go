// Merge command: reconcile staged registry exports into one wide table.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-genomics/sampleatlas/internal/merge"
	"github.com/mesh-genomics/sampleatlas/internal/report"
	"github.com/mesh-genomics/sampleatlas/internal/source"
)

var (
	mergeInDir   string
	mergeOutFile string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Reconcile raw registry exports into one wide sample table",
	Long: `Merge parses the registry exports staged under the input directory
(runinfo.csv, ena_read_run.tsv, biosample.jsonl, bioproject.jsonl,
sra_xml.jsonl, geo_metadata.tsv, ffq.jsonl), reconciles them into one
wide table, and writes it as TSV.

Missing sources are skipped with a warning; the command fails only when
both seed-capable sources (ENA and RunInfo) are empty.

Example:
  sampleatlas merge -i raw/ -o comprehensive_metadata.tsv`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeInDir, "indir", "i", "", "directory with raw registry exports (required)")
	mergeCmd.Flags().StringVarP(&mergeOutFile, "outfile", "o", "", "output TSV path (required)")
	mergeCmd.MarkFlagRequired("indir")
	mergeCmd.MarkFlagRequired("outfile")
}

func runMerge(cmd *cobra.Command, args []string) error {
	merged, err := merge.Merge(source.LoadAll(mergeInDir, log), log)
	if err != nil {
		return fmt.Errorf("reconcile sources: %w", err)
	}
	if err := report.WriteTSV(mergeOutFile, merged); err != nil {
		return fmt.Errorf("write merged table: %w", err)
	}
	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"path":    mergeOutFile,
			"rows":    merged.Len(),
			"columns": len(merged.Columns),
		})
	}
	fmt.Printf("Wrote %s (rows=%d, columns=%d)\n", mergeOutFile, merged.Len(), len(merged.Columns))
	return nil
}
