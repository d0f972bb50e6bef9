// JSONL scanning and value flattening shared by the record-oriented
// adapters. Malformed lines are skipped, not errored.
package source

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cast"
)

// maxLineBytes bounds the scanner buffer; BioSample exports carry long
// description attributes.
const maxLineBytes = 4 << 20

// readJSONL reads a JSONL file and returns each non-empty, parseable line
// decoded into a generic map. Lines that are not valid JSON objects are
// skipped.
func readJSONL(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			continue
		}
		records = append(records, obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// flattenValue renders a decoded JSON value as a table cell. Scalars coerce
// through cast; nested objects and arrays re-serialize as compact JSON so no
// information is lost in the wide table.
func flattenValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return cast.ToString(v)
	}
}

// stringAt walks nested maps by key path and returns the flattened leaf
// value, or "" when any step is absent.
func stringAt(obj map[string]any, path ...string) string {
	cur := any(obj)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur, ok = m[key]
		if !ok {
			return ""
		}
	}
	return flattenValue(cur)
}

// listAt returns the value at the key path normalized to a slice of maps.
// Registries serialize single-element lists as bare objects; both shapes
// normalize to the same slice.
func listAt(obj map[string]any, path ...string) []map[string]any {
	cur := any(obj)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			return nil
		}
	}
	switch v := cur.(type) {
	case map[string]any:
		return []map[string]any{v}
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, e := range v {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
