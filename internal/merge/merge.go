// Package merge implements the reconciliation engine: an ordered list of
// source tables is folded into one wide sample table by left-outer joins on
// declared keys, with deterministic column ordering and collision-safe
// column naming. Only the all-seeds-empty condition is fatal; every other
// degradation is logged and absorbed.
// See docs/ARCHITECTURE.md § Reconciliation Engine.
package merge

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-genomics/sampleatlas/internal/source"
	"github.com/mesh-genomics/sampleatlas/internal/table"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// Merge reconciles the sources into one wide table. The first non-empty
// seed-capable source becomes the table; every later source is left-joined
// on its declared key when that key is already a column, or weak-linked by
// accession tokens for keyless sources. Sources whose key is absent are
// skipped with a warning.
//
// Returns types.ErrNoPrimarySource when every seed-capable source is empty;
// no partial table is produced in that case.
func Merge(sources []source.Source, log *zap.Logger) (*table.Table, error) {
	merged, seedName, err := seedTable(sources)
	if err != nil {
		return nil, err
	}
	log.Info("seeded merge table",
		zap.String("source", seedName), zap.Int("rows", merged.Len()))

	for _, src := range sources {
		if src.Name == seedName {
			continue
		}
		if src.Empty() {
			log.Warn("skipping empty source", zap.String("source", src.Name))
			continue
		}
		if src.Weak {
			n := weakJoin(merged, src)
			log.Info("weak-link join applied",
				zap.String("source", src.Name), zap.Int("matched_rows", n))
			continue
		}
		if !merged.HasColumn(src.Key) {
			log.Warn("join key not present in merged table, skipping source",
				zap.String("source", src.Name), zap.String("key", src.Key))
			continue
		}
		joinLeft(merged, src)
		log.Info("joined source",
			zap.String("source", src.Name), zap.String("key", src.Key),
			zap.Int("columns", len(merged.Columns)))
	}

	merged.Reorder(PreferredColumns)
	return merged, nil
}

// seedTable copies the first non-empty seed-capable source. All seeds empty
// is the single fatal reconciliation condition.
func seedTable(sources []source.Source) (*table.Table, string, error) {
	for _, src := range sources {
		if src.Seed && !src.Empty() {
			return src.Table.Copy(), src.Name, nil
		}
	}
	return nil, "", fmt.Errorf("seeding merge table: %w", types.ErrNoPrimarySource)
}

// joinLeft merges src into the table by equality on src.Key. Every merged
// row keeps its position; unmatched rows simply gain no values. Column
// collisions resolve in favor of the existing column, with the colliding
// source column retained under a source-qualified alias so nothing is
// silently dropped.
func joinLeft(merged *table.Table, src source.Source) {
	// Index source rows by key, first occurrence wins. This also collapses
	// duplicate source rows for the same key.
	byKey := make(map[string]table.Row, src.Table.Len())
	for _, r := range src.Table.Rows {
		k := r.Get(src.Key)
		if k == "" {
			continue
		}
		if _, dup := byKey[k]; !dup {
			byKey[k] = r
		}
	}

	// Resolve target column names before touching any row, so the collision
	// decision is made once per column rather than per cell.
	colMap := make(map[string]string, len(src.Table.Columns))
	var order []string
	for _, c := range src.Table.Columns {
		if c == src.Key {
			continue
		}
		target := c
		if merged.HasColumn(c) {
			target = c + "_" + src.Tag
		}
		if merged.HasColumn(target) {
			// Alias collides too; the earlier column wins outright.
			continue
		}
		colMap[c] = target
		order = append(order, target)
	}
	for _, t := range order {
		merged.AddColumn(t)
	}

	for _, row := range merged.Rows {
		srcRow, ok := byKey[row.Get(src.Key)]
		if !ok {
			continue
		}
		for c, target := range colMap {
			if v, ok := srcRow[c]; ok && v != "" {
				row[target] = v
			}
		}
	}
}
