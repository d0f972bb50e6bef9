// Tabular adapters: SRA RunInfo CSV and ENA filereport TSV.
package source

import (
	"github.com/mesh-genomics/sampleatlas/internal/table"
)

// LoadRunInfo parses an SRA RunInfo CSV export. The "Run" column is renamed
// to run_accession so RunInfo joins (or seeds) under the shared key.
func LoadRunInfo(path string) (*table.Table, error) {
	t, err := table.ReadFile(path, table.ReadOptions{Comma: ','})
	if err != nil {
		return nil, err
	}
	t.RenameColumn("Run", KeyRunAccession)
	return t, nil
}

// LoadGEO parses a GEO series metadata TSV export. GEO carries no run-level
// key; its rows weak-link into the merged table by series accession.
func LoadGEO(path string) (*table.Table, error) {
	return table.ReadFile(path, table.ReadOptions{Comma: '\t'})
}

// LoadENA parses an ENA filereport TSV export. Paged responses concatenate
// page bodies including their header lines; repeated headers are dropped,
// keeping only the first.
func LoadENA(path string) (*table.Table, error) {
	return table.ReadFile(path, table.ReadOptions{Comma: '\t', DropRepeatedHeader: true})
}
