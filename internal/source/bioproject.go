// BioProject JSONL adapter.
package source

import (
	"github.com/mesh-genomics/sampleatlas/internal/table"
)

// bioprojectColumns in declared output order.
var bioprojectColumns = []string{
	KeyBioProject,
	"project_title",
	"project_description",
	"project_type",
	"study_title",
	"study_description",
}

// LoadBioProject parses a BioProject JSONL export into a table keyed by the
// BioProject accession. The study title and abstract ride along for the
// GEO weak-link join and the classifier's text blob. Records repeating an
// accession are dropped, keeping the first.
func LoadBioProject(path string) (*table.Table, error) {
	objs, err := readJSONL(path)
	if err != nil {
		return nil, err
	}

	t := table.New(bioprojectColumns...)
	seen := make(map[string]bool)
	for _, obj := range objs {
		project, ok := obj["Project"].(map[string]any)
		if !ok {
			continue
		}
		acc := stringAt(project, "ProjectID", "ArchiveID", "#text")
		if acc == "" || seen[acc] {
			continue
		}
		seen[acc] = true

		row := table.Row{
			KeyBioProject:         acc,
			"project_title":       stringAt(project, "ProjectDescr", "Title"),
			"project_description": stringAt(project, "ProjectDescr", "Description"),
			"project_type":        stringAt(project, "ProjectType", "ProjectTypeSubmission"),
		}
		if _, ok := project["Study"]; ok {
			row["study_title"] = stringAt(project, "Study", "Descriptor", "StudyTitle")
			row["study_description"] = stringAt(project, "Study", "Descriptor", "StudyAbstract")
		}
		t.Append(row)
	}
	return t, nil
}
