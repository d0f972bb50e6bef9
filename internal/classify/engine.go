// Package classify implements the sample classification engine: a
// priority-ordered rule cascade over each record's normalized text blob,
// consulting the cell-line reference set. Classification of one record
// never depends on another's outcome, so rows partition freely across
// workers; the only shared state is the read-only reference set and the
// vocabulary tables.
// See docs/ARCHITECTURE.md § Classification Engine.
package classify

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-genomics/sampleatlas/internal/reference"
	"github.com/mesh-genomics/sampleatlas/internal/table"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// Engine classifies sample records. Construct with NewEngine; the zero
// value is not usable.
type Engine struct {
	ref *reference.Set
	log *zap.Logger
}

// NewEngine builds an engine around a cell-line reference set. A nil or
// empty set is valid: the engine degrades to generic cell-line keywords and
// logs the degradation once.
func NewEngine(ref *reference.Set, log *zap.Logger) *Engine {
	if ref == nil {
		ref = reference.NewSet(nil)
	}
	if ref.Empty() {
		log.Warn("cell line reference absent or empty, using generic keyword detection")
	} else {
		log.Info("cell line reference loaded", zap.Int("names", ref.Len()))
	}
	return &Engine{ref: ref, log: log}
}

// Classify derives the full label set for one record. Never fails: a record
// with no usable text classifies to Unknown with all flags false, a valid
// terminal state.
func (e *Engine) Classify(row table.Row) types.Classification {
	blob := Blob(row)
	c := types.NewClassification()

	for _, rule := range primaryRules {
		if !rule.enabled(e) {
			continue
		}
		if rule.assign(e, row, blob, &c) {
			break
		}
	}

	// Secondary attributes run regardless of which primary stage fired.
	if containsAny(blob, bulkSortedVocab) {
		c.IsBulkSorted = true
	}
	if containsAny(blob, adjacentNormalVocab) {
		c.AdjacentNormal = true
		// Adjacent-normal promotes an otherwise-unclassified record, but
		// never overrides a label assigned by the cascade.
		if c.TopLabel == types.LabelUnknown {
			c.TopLabel = types.LabelNormal
		}
	}
	c.TissueOrigin = TissueOrigin(blob + " " + strings.ToLower(row.Get(bodySiteColumn)))

	return c
}

// ClassifyTable classifies every row, partitioned across the given number
// of workers. Results are indexed by row position, so output order matches
// table order for any worker count.
func (e *Engine) ClassifyTable(ctx context.Context, t *table.Table, workers int) ([]types.Classification, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]types.Classification, t.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	chunk := (t.Len() + workers - 1) / workers
	for start := 0; start < t.Len(); start += chunk {
		end := start + chunk
		if end > t.Len() {
			end = t.Len()
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				out[i] = e.Classify(t.Rows[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
