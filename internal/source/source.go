// Package source implements the adapters that parse raw registry exports
// into flat source tables with declared join keys. One adapter per source
// type; a missing or unparsable input degrades to an empty table and a
// warning, never an error.
// See docs/ARCHITECTURE.md § Source Adapters.
package source

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-genomics/sampleatlas/internal/table"
)

// Join key columns shared across registries.
const (
	KeyRunAccession = "run_accession"
	KeyBioSample    = "BioSample"
	KeyBioProject   = "BioProject"
)

// Collision tags, used to rename columns that collide with an
// earlier-merged source.
const (
	TagSRA        = "sra"
	TagBioSample  = "bs"
	TagBioProject = "bp"
	TagSRAXML     = "xml"
	TagGEO        = "geo"
	TagFFQ        = "ffq"
)

// Source is one adapter's parsed view of one registry export, immutable
// once loaded.
type Source struct {
	// Name identifies the registry for logs and collision-free aliases.
	Name string
	// Tag suffixes colliding column names during merge.
	Tag string
	// Key is the join column; empty for weak-link sources.
	Key string
	// Weak marks a source with no shared key, joined by scanning for its
	// accession tokens inside an already-merged free-text column.
	Weak bool
	// Seed marks a source usable as the merge seed.
	Seed bool
	// Table holds the parsed records; may be empty.
	Table *table.Table
}

// Empty reports whether the source contributed no records.
func (s Source) Empty() bool { return s.Table.Empty() }

// Raw input filenames under the staging directory. BioSample and BioProject
// exports exist in both original and pre-extracted forms; the extracted file
// wins when both are present.
const (
	FileRunInfo             = "runinfo.csv"
	FileENA                 = "ena_read_run.tsv"
	FileBioSample           = "biosample.jsonl"
	FileBioSampleExtracted  = "biosample_extracted.jsonl"
	FileBioProject          = "bioproject.jsonl"
	FileBioProjectExtracted = "bioproject_extracted.jsonl"
	FileSRAXML              = "sra_xml.jsonl"
	FileGEO                 = "geo_metadata.tsv"
	FileFFQ                 = "ffq.jsonl"
)

// LoadAll parses every known source file under dir and returns the sources
// in merge order: ENA first (primary seed), then RunInfo (alternate seed),
// then the key-joined enrichment sources, then the weak-link GEO source.
// Each adapter degrades to an empty table on absence or parse failure.
func LoadAll(dir string, log *zap.Logger) []Source {
	load := func(name string, fn func(string) (*table.Table, error), candidates ...string) *table.Table {
		path := firstExisting(dir, candidates)
		if path == "" {
			log.Warn("source file absent, continuing without it",
				zap.String("source", name))
			return table.New()
		}
		t, err := fn(path)
		if err != nil {
			log.Warn("source unparsable, continuing without it",
				zap.String("source", name), zap.String("path", path), zap.Error(err))
			return table.New()
		}
		return t
	}

	return []Source{
		{Name: "ena", Key: KeyRunAccession, Seed: true,
			Table: load("ena", LoadENA, FileENA)},
		{Name: "runinfo", Tag: TagSRA, Key: KeyRunAccession, Seed: true,
			Table: load("runinfo", LoadRunInfo, FileRunInfo)},
		{Name: "biosample", Tag: TagBioSample, Key: KeyBioSample,
			Table: load("biosample", LoadBioSample, FileBioSampleExtracted, FileBioSample)},
		{Name: "bioproject", Tag: TagBioProject, Key: KeyBioProject,
			Table: load("bioproject", LoadBioProject, FileBioProjectExtracted, FileBioProject)},
		{Name: "sra_xml", Tag: TagSRAXML, Key: KeyRunAccession,
			Table: load("sra_xml", LoadFlatJSONL, FileSRAXML)},
		{Name: "geo", Tag: TagGEO, Weak: true,
			Table: load("geo", LoadGEO, FileGEO)},
		{Name: "ffq", Tag: TagFFQ, Key: KeyRunAccession,
			Table: load("ffq", LoadFlatJSONL, FileFFQ)},
	}
}

func firstExisting(dir string, names []string) string {
	for _, n := range names {
		p := filepath.Join(dir, n)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// NormalizeFieldName canonicalizes a free-text attribute name: trimmed,
// lowercased, spaces and hyphens collapsed to underscores. Field names from
// different registries that normalize to the same string are treated as the
// same column.
func NormalizeFieldName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}
