package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestNormalizeFieldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cell Line", "cell_line"},
		{"  tissue-type  ", "tissue_type"},
		{"DISEASE", "disease"},
		{"sample_title", "sample_title"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeFieldName(tt.in), tt.in)
	}
}

func TestLoadRunInfo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileRunInfo, "Run,Experiment,BioSample\nSRR100,SRX1,SAMN1\nSRR200,SRX2,SAMN2\n")

	tab, err := LoadRunInfo(filepath.Join(dir, FileRunInfo))
	require.NoError(t, err)

	assert.Equal(t, []string{KeyRunAccession, "Experiment", "BioSample"}, tab.Columns)
	require.Equal(t, 2, tab.Len())
	assert.Equal(t, "SRR100", tab.Rows[0].Get(KeyRunAccession))
}

func TestLoadENA_DropsRepeatedHeaders(t *testing.T) {
	dir := t.TempDir()
	content := "run_accession\tstudy_title\n" +
		"SRR1\tEsophageal tumor study\n" +
		"run_accession\tstudy_title\n" +
		"SRR2\tControl cohort\n"
	writeFile(t, dir, FileENA, content)

	tab, err := LoadENA(filepath.Join(dir, FileENA))
	require.NoError(t, err)

	require.Equal(t, 2, tab.Len())
	assert.Equal(t, "SRR2", tab.Rows[1].Get("run_accession"))
}

func TestLoadBioSample(t *testing.T) {
	dir := t.TempDir()
	content := `{"BioSampleSet":{"BioSample":[{"accession":"SAMN1","Title":"EAC biopsy","Attributes":{"Attribute":[{"@attribute_name":"Cell Line","#text":"OE33"},{"attribute_name":"tissue-type","value":"esophagus"}]}},{"accession":"SAMN2","Attributes":{"Attribute":{"harmonized_name":"disease","text":"adenocarcinoma"}}}]}}
{"BioSample":{"accession":"SAMN1","Title":"duplicate, dropped"}}
not json
`
	writeFile(t, dir, FileBioSample, content)

	tab, err := LoadBioSample(filepath.Join(dir, FileBioSample))
	require.NoError(t, err)

	require.Equal(t, 2, tab.Len())
	assert.Equal(t, "SAMN1", tab.Rows[0].Get(KeyBioSample))
	assert.Equal(t, "OE33", tab.Rows[0].Get("cell_line"))
	assert.Equal(t, "esophagus", tab.Rows[0].Get("tissue_type"))
	assert.Equal(t, "EAC biopsy", tab.Rows[0].Get("biosample_title"))

	// Single-attribute record serialized as bare object, not list.
	assert.Equal(t, "adenocarcinoma", tab.Rows[1].Get("disease"))

	// Duplicate accession kept the first record's title.
	assert.Equal(t, "EAC biopsy", tab.Rows[0].Get("biosample_title"))
}

func TestLoadBioProject(t *testing.T) {
	dir := t.TempDir()
	content := `{"Project":{"ProjectID":{"ArchiveID":{"#text":"PRJNA1"}},"ProjectDescr":{"Title":"Barrett progression","Description":"Longitudinal cohort"},"Study":{"Descriptor":{"StudyTitle":"GSE1234 Barrett study","StudyAbstract":"abstract text"}}}}
{"Project":{"ProjectID":{"ArchiveID":{"#text":"PRJNA1"}},"ProjectDescr":{"Title":"duplicate"}}}
`
	writeFile(t, dir, FileBioProject, content)

	tab, err := LoadBioProject(filepath.Join(dir, FileBioProject))
	require.NoError(t, err)

	require.Equal(t, 1, tab.Len())
	assert.Equal(t, "PRJNA1", tab.Rows[0].Get(KeyBioProject))
	assert.Equal(t, "Barrett progression", tab.Rows[0].Get("project_title"))
	assert.Equal(t, "GSE1234 Barrett study", tab.Rows[0].Get("study_title"))
}

func TestLoadFlatJSONL(t *testing.T) {
	dir := t.TempDir()
	content := `{"run_accession":"SRR1","spots":12345,"nested":{"a":1}}
{"run_accession":"SRR2","extra":"value"}

{"broken":
`
	writeFile(t, dir, FileFFQ, content)

	tab, err := LoadFlatJSONL(filepath.Join(dir, FileFFQ))
	require.NoError(t, err)

	require.Equal(t, 2, tab.Len())
	assert.Equal(t, "SRR1", tab.Rows[0].Get("run_accession"))
	assert.Equal(t, "12345", tab.Rows[0].Get("spots"))
	assert.Equal(t, `{"a":1}`, tab.Rows[0].Get("nested"))
	assert.Equal(t, "value", tab.Rows[1].Get("extra"))
	// Keys register in sorted order within one object.
	assert.Equal(t, []string{"nested", "run_accession", "spots", "extra"}, tab.Columns)
}

func TestLoadAll(t *testing.T) {
	t.Run("absent files degrade to empty sources", func(t *testing.T) {
		dir := t.TempDir()
		sources := LoadAll(dir, zap.NewNop())

		require.Len(t, sources, 7)
		for _, s := range sources {
			assert.True(t, s.Empty(), s.Name)
		}
	})

	t.Run("merge order and roles", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, FileENA, "run_accession\tstudy_title\nSRR1\tstudy\n")
		writeFile(t, dir, FileRunInfo, "Run,BioSample\nSRR1,SAMN1\n")

		sources := LoadAll(dir, zap.NewNop())
		require.Len(t, sources, 7)

		assert.Equal(t, "ena", sources[0].Name)
		assert.True(t, sources[0].Seed)
		assert.Equal(t, "runinfo", sources[1].Name)
		assert.True(t, sources[1].Seed)
		assert.Equal(t, "geo", sources[5].Name)
		assert.True(t, sources[5].Weak)
		assert.False(t, sources[0].Empty())
		assert.False(t, sources[1].Empty())
	})

	t.Run("extracted biosample file wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, FileBioSample, `{"BioSample":{"accession":"SAMN_ORIG"}}`+"\n")
		writeFile(t, dir, FileBioSampleExtracted, `{"BioSample":{"accession":"SAMN_EXTRACTED"}}`+"\n")

		sources := LoadAll(dir, zap.NewNop())
		bs := sources[2]
		require.Equal(t, "biosample", bs.Name)
		require.Equal(t, 1, bs.Table.Len())
		assert.Equal(t, "SAMN_EXTRACTED", bs.Table.Rows[0].Get(KeyBioSample))
	})
}
