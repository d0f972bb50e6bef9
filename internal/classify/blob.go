// Free-text normalizer: per-record text blob assembly.
package classify

import (
	"strings"

	"github.com/mesh-genomics/sampleatlas/internal/table"
)

// nanLiteral is the missing-value marker some upstream exports write as
// text; it never contributes to the blob.
const nanLiteral = "nan"

// Blob derives the normalized text blob for one record: every allowlisted
// field that is present, non-empty, and not the "nan" literal is lowercased
// and appended in allowlist order, joined by single spaces. Missing fields
// are simply absent; there is no padding.
func Blob(row table.Row) string {
	parts := make([]string, 0, len(TextFields))
	for _, field := range TextFields {
		v := strings.ToLower(row.Get(field))
		if v == "" || v == nanLiteral {
			continue
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, " ")
}
