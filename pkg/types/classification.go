// Classification entities for reconciled sample records.
// See docs/ARCHITECTURE.md § Classification Engine.
package types

// TopLabel is the primary disease-state category assigned to a sample.
// Every classified record carries exactly one of the five values below;
// a record that matches no rule stays LabelUnknown rather than empty.
type TopLabel string

const (
	LabelTumor        TopLabel = "Tumor"
	LabelPreMalignant TopLabel = "Pre-malignant"
	LabelNormal       TopLabel = "Normal"
	LabelCellLine     TopLabel = "Cell line"
	LabelUnknown      TopLabel = "Unknown"
)

// Valid reports whether l is one of the five defined labels.
func (l TopLabel) Valid() bool {
	switch l {
	case LabelTumor, LabelPreMalignant, LabelNormal, LabelCellLine, LabelUnknown:
		return true
	}
	return false
}

// BarrettGrade is the dysplasia grade assigned to pre-malignant samples.
// The field is present on every record for schema uniformity and defaults
// to GradeUnknown; it is only meaningful when TopLabel is LabelPreMalignant.
type BarrettGrade string

const (
	GradeLGD         BarrettGrade = "LGD"
	GradeHGD         BarrettGrade = "HGD"
	GradeIndefinite  BarrettGrade = "indefinite"
	GradeNoDysplasia BarrettGrade = "no dysplasia"
	GradeUnknown     BarrettGrade = "unknown"
)

// Classification holds the derived attributes produced by one classification
// pass over a sample record. Adapters and the merge engine never populate
// these; they are written exactly once and read-only afterwards.
type Classification struct {
	TopLabel       TopLabel
	IsCellLine     bool
	IsBulkSorted   bool
	IsControl      bool
	AdjacentNormal bool
	BarrettGrade   BarrettGrade
	TissueOrigin   string
}

// NewClassification returns the default classification: Unknown label, all
// flags false, unknown grade and tissue. This is a valid terminal state for
// records with no usable text.
func NewClassification() Classification {
	return Classification{
		TopLabel:     LabelUnknown,
		BarrettGrade: GradeUnknown,
		TissueOrigin: TissueUnknown,
	}
}

// TissueUnknown is the tissue origin assigned when no anatomical vocabulary
// matches.
const TissueUnknown = "unknown"

// ClassificationColumns lists the derived columns in output order. The
// report writer prepends them to the merged table in exactly this order.
var ClassificationColumns = []string{
	"top_label",
	"is_cell_line",
	"is_bulk_sorted",
	"is_control",
	"adjacent_normal",
	"barrett_grade",
	"tissue_origin",
}

// Values returns the classification serialized in ClassificationColumns
// order. Booleans serialize as "yes"/"no" to match the upstream registry
// convention.
func (c Classification) Values() []string {
	return []string{
		string(c.TopLabel),
		yesNo(c.IsCellLine),
		yesNo(c.IsBulkSorted),
		yesNo(c.IsControl),
		yesNo(c.AdjacentNormal),
		string(c.BarrettGrade),
		c.TissueOrigin,
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Categories lists the downstream partition directory names, one per label.
// "Cell line" folds to "Cell_line" so the label is filesystem-safe.
var Categories = []string{"Tumor", "Pre-malignant", "Normal", "Cell_line", "Unknown"}

// CategoryDir maps a top label spelling to its partition directory name.
// Both "Cell line" and "Cell_line" fold to the same category; any label
// outside the five known values maps to "Unknown".
func CategoryDir(label string) string {
	if label == "Cell line" || label == "Cell_line" {
		return "Cell_line"
	}
	for _, c := range Categories {
		if label == c {
			return c
		}
	}
	return "Unknown"
}
