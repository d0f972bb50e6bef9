// Category partitioning of classified tables.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-genomics/sampleatlas/internal/table"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// topLabelColumn is the derived column partitioning reads.
const topLabelColumn = "top_label"

// accessionColumn identifies the run in partition lists.
const accessionColumn = "run_accession"

// Partition groups run accessions of a classified table by category
// directory name. Both "Cell line" and "Cell_line" spellings fold into the
// Cell_line partition. Rows without a run accession are skipped.
func Partition(t *table.Table) (map[string][]string, error) {
	if !t.HasColumn(topLabelColumn) {
		return nil, fmt.Errorf("partitioning table: %w", types.ErrColumnNotFound)
	}
	parts := make(map[string][]string, len(types.Categories))
	for _, row := range t.Rows {
		acc := row.Get(accessionColumn)
		if acc == "" {
			continue
		}
		cat := types.CategoryDir(row.Get(topLabelColumn))
		parts[cat] = append(parts[cat], acc)
	}
	return parts, nil
}

// WritePartitionLists writes one <Category>_runs.txt accession list per
// non-empty category under dir.
func WritePartitionLists(dir string, parts map[string][]string) error {
	for _, cat := range types.Categories {
		accs := parts[cat]
		if len(accs) == 0 {
			continue
		}
		path := filepath.Join(dir, cat+"_runs.txt")
		content := strings.Join(accs, "\n") + "\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
