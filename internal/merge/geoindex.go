// Weak-link join for the GEO source. GEO records share no key with the run
// table; they are matched by GSE accession tokens embedded in the merged
// study_title column. The join is approximate by construction: an accession
// quoted in an unrelated title will still match. Matching is boundary
// anchored (whole accession tokens, never raw substring containment) and
// indexed, so merge cost stays linear in rows plus reference entries.
package merge

import (
	"regexp"

	"github.com/mesh-genomics/sampleatlas/internal/source"
	"github.com/mesh-genomics/sampleatlas/internal/table"
)

// weakLinkColumn is the merged free-text column scanned for accession
// tokens.
const weakLinkColumn = "study_title"

// gsePattern matches a whole GEO series accession token.
var gsePattern = regexp.MustCompile(`\bGSE[0-9]+\b`)

// weakJoin matches GEO records to merged rows by GSE accession token and
// copies the GEO columns under geo_-prefixed names. Every GEO column is
// registered even when no row matches, so the output schema does not depend
// on match luck. Returns the number of rows that matched.
func weakJoin(merged *table.Table, src source.Source) int {
	if !merged.HasColumn(weakLinkColumn) {
		return 0
	}

	// Reverse index: accession token -> GEO row, built once. A GEO record
	// may carry its accession in any column; first record claiming a token
	// wins.
	index := make(map[string]table.Row)
	for _, r := range src.Table.Rows {
		for _, c := range src.Table.Columns {
			v := r.Get(c)
			if gsePattern.MatchString(v) && gsePattern.FindString(v) == v {
				if _, dup := index[v]; !dup {
					index[v] = r
				}
			}
		}
	}
	if len(index) == 0 {
		return 0
	}

	colMap := make(map[string]string, len(src.Table.Columns))
	for _, c := range src.Table.Columns {
		colMap[c] = "geo_" + c
		merged.AddColumn("geo_" + c)
	}

	matched := 0
	for _, row := range merged.Rows {
		title := row.Get(weakLinkColumn)
		if title == "" {
			continue
		}
		// First accession-shaped token with a GEO record wins.
		for _, token := range gsePattern.FindAllString(title, -1) {
			geoRow, ok := index[token]
			if !ok {
				continue
			}
			for c, target := range colMap {
				row[target] = geoRow.Get(c)
			}
			matched++
			break
		}
	}
	return matched
}
