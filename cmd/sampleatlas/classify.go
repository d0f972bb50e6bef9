// Classify command: derive disease-state labels for a merged table.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-genomics/sampleatlas/internal/classify"
	"github.com/mesh-genomics/sampleatlas/internal/reference"
	"github.com/mesh-genomics/sampleatlas/internal/report"
	"github.com/mesh-genomics/sampleatlas/internal/table"
)

var (
	classifyInFile  string
	classifyOutFile string
	classifyRef     string
	classifyWorkers int
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify merged samples into disease-state categories",
	Long: `Classify reads a merged metadata TSV, derives the disease-state label
set for every sample (tumor, pre-malignant, normal, cell line, unknown,
plus secondary flags, Barrett grade, and tissue origin), and writes the
augmented table with the derived columns prepended.

A cell line reference database (CSV or SQLite) sharpens cell-line
detection; without one the classifier falls back to generic keywords.

Example:
  sampleatlas classify -i comprehensive_metadata.tsv -o classified_metadata.tsv
  sampleatlas classify -i merged.tsv -o classified.tsv --cell-line-ref cellosaurus.db`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyInFile, "input", "i", "", "merged metadata TSV (required)")
	classifyCmd.Flags().StringVarP(&classifyOutFile, "output", "o", "", "classified output TSV (required)")
	classifyCmd.Flags().StringVar(&classifyRef, "cell-line-ref", "", "cell line reference database (default: config cell_line_ref)")
	classifyCmd.Flags().IntVar(&classifyWorkers, "workers", 1, "parallel classification workers")
	classifyCmd.MarkFlagRequired("input")
	classifyCmd.MarkFlagRequired("output")
}

func runClassify(cmd *cobra.Command, args []string) error {
	t, err := table.ReadFile(classifyInFile, table.ReadOptions{Comma: '\t'})
	if err != nil {
		return fmt.Errorf("read merged table: %w", err)
	}

	engine := classify.NewEngine(loadReferenceSet(), log)
	cls, err := engine.ClassifyTable(cmd.Context(), t, classifyWorkers)
	if err != nil {
		return fmt.Errorf("classify samples: %w", err)
	}

	augmented, err := report.Augment(t, cls)
	if err != nil {
		return fmt.Errorf("augment table: %w", err)
	}
	if err := report.WriteTSV(classifyOutFile, augmented); err != nil {
		return fmt.Errorf("write classified table: %w", err)
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(report.Summarize(cls))
	}
	fmt.Printf("Wrote %s\n\n", classifyOutFile)
	report.Summarize(cls).Print(os.Stdout)
	return nil
}

// loadReferenceSet loads the reference from the flag or config path. A load
// failure degrades to generic detection, logged not raised.
func loadReferenceSet() *reference.Set {
	path := classifyRef
	if path == "" {
		path = cfg.CellLineRef
	}
	if path == "" {
		return nil
	}
	ref, err := reference.Load(path)
	if err != nil {
		log.Warn("cell line reference load failed, degrading to generic detection",
			zap.String("path", path), zap.Error(err))
		return nil
	}
	return ref
}
