package classify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesh-genomics/sampleatlas/internal/reference"
	"github.com/mesh-genomics/sampleatlas/internal/table"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

func newTestEngine(t *testing.T, names ...string) *Engine {
	t.Helper()
	var ref *reference.Set
	if len(names) > 0 {
		ref = reference.NewSet(names)
	}
	return NewEngine(ref, zap.NewNop())
}

func TestClassify_ExplicitTumorFlagBeatsKeywords(t *testing.T) {
	e := newTestEngine(t, "oe33")

	// Cell-line and normal keywords present, but the explicit flag wins.
	c := e.Classify(table.Row{
		"Tumor":        "YES",
		"sample_title": "oe33 cell line, healthy control",
	})
	assert.Equal(t, types.LabelTumor, c.TopLabel)
	assert.False(t, c.IsCellLine)

	c = e.Classify(table.Row{"is_tumor": "true", "sample_title": "normal tissue"})
	assert.Equal(t, types.LabelTumor, c.TopLabel)
}

func TestClassify_TumorFlagNarrowTruthiness(t *testing.T) {
	e := newTestEngine(t)
	for _, v := range []string{"y", "t", "on", "2", "no", "false"} {
		c := e.Classify(table.Row{"Tumor": v})
		assert.NotEqual(t, types.LabelTumor, c.TopLabel, "flag value %q", v)
	}
}

func TestClassify_CellLineReference(t *testing.T) {
	e := newTestEngine(t, "OE33", "KYSE-150")

	t.Run("named line match", func(t *testing.T) {
		c := e.Classify(table.Row{"sample_title": "RNA-seq of OE33 xenograft"})
		assert.Equal(t, types.LabelCellLine, c.TopLabel)
		assert.True(t, c.IsCellLine)
	})

	t.Run("generic fallback within the reference stage", func(t *testing.T) {
		c := e.Classify(table.Row{"sample_title": "passaged culture, patient derived"})
		assert.Equal(t, types.LabelCellLine, c.TopLabel)
		assert.True(t, c.IsCellLine)
	})

	t.Run("no match falls through", func(t *testing.T) {
		c := e.Classify(table.Row{"sample_title": "esophageal adenocarcinoma biopsy"})
		assert.Equal(t, types.LabelTumor, c.TopLabel)
	})
}

func TestClassify_DegradesWithoutReference(t *testing.T) {
	e := newTestEngine(t)

	c := e.Classify(table.Row{"sample_title": "passaged culture, patient derived"})
	assert.Equal(t, types.LabelCellLine, c.TopLabel)
	assert.True(t, c.IsCellLine)

	// A named line unknown to generic keywords no longer classifies.
	c = e.Classify(table.Row{"sample_title": "OE33 sample"})
	assert.Equal(t, types.LabelUnknown, c.TopLabel)
}

func TestClassify_PreMalignantAndBarrettGrade(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		title string
		grade types.BarrettGrade
	}{
		{"barrett's esophagus with low grade dysplasia", types.GradeLGD},
		{"barrett segment, HGD", types.GradeHGD},
		{"metaplasia indefinite for dysplasia", types.GradeIndefinite},
		{"barrett's esophagus no dysplasia", types.GradeNoDysplasia},
		{"intestinal metaplasia", types.GradeUnknown},
	}
	for _, tt := range tests {
		c := e.Classify(table.Row{"sample_title": tt.title})
		assert.Equal(t, types.LabelPreMalignant, c.TopLabel, tt.title)
		assert.Equal(t, tt.grade, c.BarrettGrade, tt.title)
	}
}

func TestClassify_BarrettGradeDefaultsUnknown(t *testing.T) {
	e := newTestEngine(t)
	c := e.Classify(table.Row{"sample_title": "esophageal tumor"})
	assert.Equal(t, types.GradeUnknown, c.BarrettGrade)
}

func TestClassify_NormalAndControl(t *testing.T) {
	e := newTestEngine(t)
	c := e.Classify(table.Row{"sample_title": "healthy donor squamous epithelium"})
	assert.Equal(t, types.LabelNormal, c.TopLabel)
	assert.True(t, c.IsControl)
}

func TestClassify_GenericTumor(t *testing.T) {
	e := newTestEngine(t)
	c := e.Classify(table.Row{"disease": "esophageal adenocarcinoma"})
	assert.Equal(t, types.LabelTumor, c.TopLabel)
	assert.False(t, c.IsControl)
}

func TestClassify_UnknownIsTerminal(t *testing.T) {
	e := newTestEngine(t)

	c := e.Classify(table.Row{})
	assert.Equal(t, types.LabelUnknown, c.TopLabel)
	assert.False(t, c.IsCellLine)
	assert.False(t, c.IsBulkSorted)
	assert.False(t, c.IsControl)
	assert.False(t, c.AdjacentNormal)
	assert.Equal(t, types.GradeUnknown, c.BarrettGrade)
	assert.Equal(t, types.TissueUnknown, c.TissueOrigin)
	assert.True(t, c.TopLabel.Valid())
}

func TestClassify_EveryOutcomeIsValidLabel(t *testing.T) {
	e := newTestEngine(t, "oe33")
	titles := []string{
		"", "nan", "OE33 culture", "barrett hgd", "healthy control",
		"metastatic carcinoma", "completely unrelated text",
	}
	for _, title := range titles {
		c := e.Classify(table.Row{"sample_title": title})
		assert.True(t, c.TopLabel.Valid(), title)
	}
}

func TestClassify_SecondaryAttributes(t *testing.T) {
	e := newTestEngine(t)

	t.Run("bulk sorted independent of label", func(t *testing.T) {
		c := e.Classify(table.Row{"sample_title": "FACS sorted CD8 tumor cells"})
		assert.Equal(t, types.LabelTumor, c.TopLabel)
		assert.True(t, c.IsBulkSorted)
	})

	t.Run("adjacent normal promotes Unknown to Normal", func(t *testing.T) {
		c := e.Classify(table.Row{"sample_title": "adjacent tissue sample"})
		assert.True(t, c.AdjacentNormal)
		assert.Equal(t, types.LabelNormal, c.TopLabel)
	})

	t.Run("adjacent normal never overrides an assigned label", func(t *testing.T) {
		c := e.Classify(table.Row{"sample_title": "tumor and adjacent normal pair"})
		assert.True(t, c.AdjacentNormal)
		assert.Equal(t, types.LabelTumor, c.TopLabel)
	})

	t.Run("tissue origin from blob", func(t *testing.T) {
		c := e.Classify(table.Row{"sample_title": "gastric tumor"})
		assert.Equal(t, "stomach", c.TissueOrigin)
	})

	t.Run("tissue origin from Body_Site only", func(t *testing.T) {
		c := e.Classify(table.Row{"Body_Site": "Esophagus"})
		assert.Equal(t, "esophagus", c.TissueOrigin)
	})
}

func TestClassify_Deterministic(t *testing.T) {
	e := newTestEngine(t, "oe33", "kyse-150")
	row := table.Row{
		"sample_title": "OE33 and KYSE-150 barrett tumor control culture",
		"disease":      "adenocarcinoma",
	}
	first := e.Classify(row)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, e.Classify(row))
	}
}

func TestClassifyTable_OrderIndependentOfWorkers(t *testing.T) {
	e := newTestEngine(t, "oe33")

	tab := table.New("run_accession", "sample_title")
	titles := []string{
		"OE33 culture", "barrett lgd", "healthy donor", "metastatic tumor",
		"adjacent normal", "nothing notable", "gastric cancer", "FACS sorted CD4",
	}
	for i, title := range titles {
		tab.Append(table.Row{
			"run_accession": fmt.Sprintf("SRR%d", i),
			"sample_title":  title,
		})
	}

	sequential, err := e.ClassifyTable(context.Background(), tab, 1)
	require.NoError(t, err)
	require.Len(t, sequential, len(titles))

	for _, workers := range []int{2, 4, 16, 0} {
		parallel, err := e.ClassifyTable(context.Background(), tab, workers)
		require.NoError(t, err)
		assert.Equal(t, sequential, parallel, "workers=%d", workers)
	}
}

func TestClassifyTable_ContextCancel(t *testing.T) {
	e := newTestEngine(t)
	tab := table.New("sample_title")
	for i := 0; i < 100; i++ {
		tab.Append(table.Row{"sample_title": "tumor"})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.ClassifyTable(ctx, tab, 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBlob(t *testing.T) {
	t.Run("allowlist order, lowercased, nan skipped", func(t *testing.T) {
		row := table.Row{
			"study_title":  "Study TITLE",
			"sample_title": "Sample",
			"disease":      "nan",
			"not_in_list":  "ignored",
		}
		// sample_title precedes study_title in the allowlist.
		assert.Equal(t, "sample study title", Blob(row))
	})

	t.Run("empty row yields empty blob", func(t *testing.T) {
		assert.Empty(t, Blob(table.Row{}))
	})
}

func TestTissueOrigin(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"esophageal adenocarcinoma", "esophagus"},
		{"gastric biopsy", "stomach"},
		{"colon organoid", "intestine"},
		{"pulmonary nodule", "lung"},
		{"hepatic tissue", "liver"},
		{"nothing anatomical", types.TissueUnknown},
		// First table entry wins on multi-tissue text.
		{"gastric and esophageal junction", "esophagus"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TissueOrigin(tt.text), tt.text)
	}
}
