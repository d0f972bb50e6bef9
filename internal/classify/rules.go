// Primary-label rule cascade and keyword vocabularies. The cascade is a
// data-driven ordered table: each rule names a stage, declares when it is
// enabled, and assigns label fields on match. First matching rule settles
// the primary label; vocabulary slice order settles ties inside a rule.
package classify

import (
	"strings"

	"github.com/mesh-genomics/sampleatlas/internal/table"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// tumorFlagColumns are the explicit boolean-like tumor fields, checked
// before any keyword stage.
var tumorFlagColumns = []string{"Tumor", "is_tumor"}

// tumorFlagValues are the accepted truthy literals, compared
// case-insensitively. Deliberately narrower than generic truthiness
// coercion, which would also accept "t" and "y".
var tumorFlagValues = []string{"yes", "true", "1"}

// genericCellLineVocab detects cultured material when no reference entry
// matched. The historical "cl" and "line" tokens are excluded: both match
// inside unrelated words and the reference set covers named lines.
var genericCellLineVocab = []string{
	"cell line", "cellline", "culture", "passaged", "passage",
}

var preMalignantVocab = []string{
	"barrett", "metaplasia", "dysplasia", "lgd", "hgd", "indefinite",
	"pre-malignant", "premalignant", "precursor", "atypia", "hyperplasia",
}

// barrettGradeRules assign the dysplasia grade for pre-malignant samples,
// checked in order, first match wins; no match leaves GradeUnknown.
var barrettGradeRules = []struct {
	Grade types.BarrettGrade
	Terms []string
}{
	{types.GradeLGD, []string{"lgd", "low grade dysplasia"}},
	{types.GradeHGD, []string{"hgd", "high grade dysplasia"}},
	{types.GradeIndefinite, []string{"indefinite"}},
	{types.GradeNoDysplasia, []string{"no dysplasia"}},
}

var normalVocab = []string{
	"normal", "healthy", "control", "non-diseased", "squamous epithelium",
	"healthy donor", "baseline", "wild type", "wt", "benign",
}

var tumorVocab = []string{
	"carcinoma", "cancer", "tumor", "tumour", "malignant", "adenocarcinoma",
	"squamous cell carcinoma", "scc", "invasive", "metastatic", "neoplasm",
	"esophageal adenocarcinoma", "eac", "esophageal cancer",
	"sarcoma", "lymphoma", "leukemia", "melanoma", "glioblastoma",
	"blastoma", "carcinoid", "adenoma", "papilloma", "fibroma",
}

var bulkSortedVocab = []string{
	"sorted", "purified", "isolated", "enriched", "facs", "magnetic",
	"cd4", "cd8", "t cell", "b cell", "monocyte", "macrophage",
}

var adjacentNormalVocab = []string{
	"adjacent", "marginal normal", "paired normal", "surrounding normal",
	"normal adjacent", "adjacent normal",
}

// primaryRule is one stage of the primary-label cascade.
type primaryRule struct {
	name string
	// enabled gates the stage on engine state (reference availability).
	enabled func(e *Engine) bool
	// assign writes label fields and reports whether the stage fired.
	assign func(e *Engine, row table.Row, blob string, c *types.Classification) bool
}

func always(*Engine) bool { return true }

// primaryRules is the cascade in strict priority order.
var primaryRules = []primaryRule{
	{
		name:    "explicit-tumor-flag",
		enabled: always,
		assign: func(e *Engine, row table.Row, blob string, c *types.Classification) bool {
			for _, col := range tumorFlagColumns {
				v := strings.ToLower(row.Get(col))
				for _, truthy := range tumorFlagValues {
					if v == truthy {
						c.TopLabel = types.LabelTumor
						return true
					}
				}
			}
			return false
		},
	},
	{
		name:    "cell-line-reference",
		enabled: func(e *Engine) bool { return !e.ref.Empty() },
		assign: func(e *Engine, row table.Row, blob string, c *types.Classification) bool {
			if _, ok := e.ref.Match(blob); ok {
				c.TopLabel = types.LabelCellLine
				c.IsCellLine = true
				return true
			}
			// No named line matched; try the generic vocabulary before
			// giving up the stage.
			if containsAny(blob, genericCellLineVocab) {
				c.TopLabel = types.LabelCellLine
				c.IsCellLine = true
				return true
			}
			return false
		},
	},
	{
		name:    "cell-line-generic",
		enabled: func(e *Engine) bool { return e.ref.Empty() },
		assign: func(e *Engine, row table.Row, blob string, c *types.Classification) bool {
			if containsAny(blob, genericCellLineVocab) {
				c.TopLabel = types.LabelCellLine
				c.IsCellLine = true
				return true
			}
			return false
		},
	},
	{
		name:    "pre-malignant",
		enabled: always,
		assign: func(e *Engine, row table.Row, blob string, c *types.Classification) bool {
			if !containsAny(blob, preMalignantVocab) {
				return false
			}
			c.TopLabel = types.LabelPreMalignant
			for _, g := range barrettGradeRules {
				if containsAny(blob, g.Terms) {
					c.BarrettGrade = g.Grade
					break
				}
			}
			return true
		},
	},
	{
		name:    "normal",
		enabled: always,
		assign: func(e *Engine, row table.Row, blob string, c *types.Classification) bool {
			if containsAny(blob, normalVocab) {
				c.TopLabel = types.LabelNormal
				c.IsControl = true
				return true
			}
			return false
		},
	},
	{
		name:    "tumor-generic",
		enabled: always,
		assign: func(e *Engine, row table.Row, blob string, c *types.Classification) bool {
			if containsAny(blob, tumorVocab) {
				c.TopLabel = types.LabelTumor
				return true
			}
			return false
		},
	},
}

// containsAny reports whether any vocabulary term occurs in the blob as a
// substring, honoring slice order for determinism.
func containsAny(blob string, vocab []string) bool {
	for _, term := range vocab {
		if strings.Contains(blob, term) {
			return true
		}
	}
	return false
}
