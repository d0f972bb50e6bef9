// SQLite loader for cell-line reference databases.
package reference

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// referenceQuery reads both name forms from the cell_lines table. The
// stripped form is nullable in older database exports.
const referenceQuery = `SELECT name, COALESCE(stripped_name, '') FROM cell_lines`

// LoadSQLite reads cell-line names from a SQLite reference database with a
// cell_lines(name, stripped_name) table.
func LoadSQLite(path string) (*Set, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrReferenceUnavailable, path, err)
	}
	defer db.Close()

	rows, err := db.Query(referenceQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %v", types.ErrReferenceUnavailable, path, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name, stripped string
		if err := rows.Scan(&name, &stripped); err != nil {
			return nil, fmt.Errorf("%w: scanning %s: %v", types.ErrReferenceUnavailable, path, err)
		}
		if name != "" {
			names = append(names, name)
		}
		if stripped != "" {
			names = append(names, stripped)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrReferenceUnavailable, path, err)
	}

	set := NewSet(filterShort(names))
	if set.Empty() {
		return nil, fmt.Errorf("%w: %s", types.ErrReferenceEmpty, path)
	}
	return set, nil
}
