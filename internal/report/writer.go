// Package report serializes classification results: the augmented wide
// table, distribution summaries, and category-partitioned accession lists.
// See docs/ARCHITECTURE.md § Report Writer.
package report

import (
	"fmt"

	"github.com/mesh-genomics/sampleatlas/internal/table"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// Augment prepends the seven derived classification columns to the merged
// table. cls must hold one classification per row, in row order.
func Augment(t *table.Table, cls []types.Classification) (*table.Table, error) {
	if len(cls) != t.Len() {
		return nil, fmt.Errorf("classification count %d does not match row count %d", len(cls), t.Len())
	}

	out := table.New(types.ClassificationColumns...)
	for _, c := range t.Columns {
		out.AddColumn(c)
	}
	for i, row := range t.Rows {
		r := row.Clone()
		values := cls[i].Values()
		for j, col := range types.ClassificationColumns {
			r[col] = values[j]
		}
		out.Rows = append(out.Rows, r)
	}
	return out, nil
}

// WriteTSV writes the table as tab-delimited text, atomically.
func WriteTSV(path string, t *table.Table) error {
	return table.WriteFile(path, t, '\t')
}
