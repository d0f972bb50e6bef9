// Tissue-origin mapper: a static, ordered table of anatomical synonym sets.
// New tissues are added by appending rows, never by branching logic.
package classify

import "github.com/mesh-genomics/sampleatlas/pkg/types"

// tissueTable is evaluated top to bottom; the first entry with any matching
// term wins.
var tissueTable = []struct {
	Name  string
	Terms []string
}{
	{"esophagus", []string{"esophagus", "esophageal"}},
	{"stomach", []string{"stomach", "gastric"}},
	{"intestine", []string{"intestine", "intestinal", "colon"}},
	{"lung", []string{"lung", "pulmonary"}},
	{"liver", []string{"liver", "hepatic"}},
	{"breast", []string{"breast", "mammary"}},
	{"brain", []string{"brain", "cerebral"}},
	{"ovary", []string{"ovary", "ovarian"}},
	{"prostate", []string{"prostate", "prostatic"}},
	{"pancreas", []string{"pancreas", "pancreatic"}},
}

// TissueOrigin maps combined sample text to a tissue name, defaulting to
// "unknown" on exhaustive miss.
func TissueOrigin(text string) string {
	for _, entry := range tissueTable {
		if containsAny(text, entry.Terms) {
			return entry.Name
		}
	}
	return types.TissueUnknown
}
