// BioSample JSONL adapter. BioSample exports wrap records in either a
// BioSampleSet envelope or a bare BioSample object, and serialize attribute
// names under several historical keys; this adapter normalizes all of them.
package source

import (
	"github.com/mesh-genomics/sampleatlas/internal/table"
)

// attributeNameKeys lists the keys a BioSample attribute name may hide
// under, in precedence order.
var attributeNameKeys = []string{"@attribute_name", "attribute_name", "harmonized_name"}

// attributeValueKeys lists the keys an attribute value may hide under, in
// precedence order.
var attributeValueKeys = []string{"#text", "value", "text"}

// LoadBioSample parses a BioSample JSONL export into a table keyed by the
// BioSample accession. Attribute names are normalized; the record title and
// description are captured as biosample_title and biosample_description.
// Records repeating an accession are dropped, keeping the first.
func LoadBioSample(path string) (*table.Table, error) {
	objs, err := readJSONL(path)
	if err != nil {
		return nil, err
	}

	t := table.New(KeyBioSample)
	seen := make(map[string]bool)
	for _, obj := range objs {
		for _, bs := range biosampleRecords(obj) {
			acc := stringAt(bs, "accession")
			if acc == "" || seen[acc] {
				continue
			}
			seen[acc] = true

			row := table.Row{KeyBioSample: acc}
			var order []string
			for _, attr := range listAt(bs, "Attributes", "Attribute") {
				name := firstOf(attr, attributeNameKeys)
				if name == "" {
					continue
				}
				key := NormalizeFieldName(name)
				if _, ok := row[key]; ok {
					continue
				}
				row[key] = firstOf(attr, attributeValueKeys)
				order = append(order, key)
			}
			if v := stringAt(bs, "Title"); v != "" {
				row["biosample_title"] = v
				order = append(order, "biosample_title")
			}
			if v := stringAt(bs, "Description"); v != "" {
				row["biosample_description"] = v
				order = append(order, "biosample_description")
			}
			t.Append(row, order...)
		}
	}
	return t, nil
}

// biosampleRecords unwraps the envelope variants around BioSample records.
func biosampleRecords(obj map[string]any) []map[string]any {
	if _, ok := obj["BioSampleSet"]; ok {
		return listAt(obj, "BioSampleSet", "BioSample")
	}
	if _, ok := obj["BioSample"]; ok {
		return listAt(obj, "BioSample")
	}
	return nil
}

func firstOf(obj map[string]any, keys []string) string {
	for _, k := range keys {
		if v := stringAt(obj, k); v != "" {
			return v
		}
	}
	return ""
}
