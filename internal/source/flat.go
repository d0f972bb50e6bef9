// Flat JSONL adapter shared by the SRA-XML, GEO, and ffq sources: one JSON
// object per line, one table row per object, columns in first-seen key
// order.
package source

import (
	"sort"

	"github.com/mesh-genomics/sampleatlas/internal/table"
)

// LoadFlatJSONL parses line-delimited flat JSON objects into a table. Keys
// within one object register in sorted order so column order is independent
// of map iteration; across objects, first-seen order wins.
func LoadFlatJSONL(path string) (*table.Table, error) {
	objs, err := readJSONL(path)
	if err != nil {
		return nil, err
	}

	t := table.New()
	for _, obj := range objs {
		if len(obj) == 0 {
			continue
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		row := make(table.Row, len(obj))
		for _, k := range keys {
			row[k] = flattenValue(obj[k])
		}
		t.Append(row, keys...)
	}
	return t, nil
}
