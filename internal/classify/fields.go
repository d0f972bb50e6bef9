// Free-text field allowlist for the classifier blob.
package classify

// TextFields is the versioned allowlist of candidate free-text field names,
// the superset across all known source schemas. Blob assembly follows this
// order, not table column order, so the canonical blob form is stable for a
// fixed record. Supporting a new source schema means appending names here,
// never touching classifier logic.
var TextFields = []string{
	"cell_line", "disease", "tissue_type", "sample_title", "study_title",
	"experiment_title", "source_name", "cell_type", "disease_state",
	"histological_type", "treatment", "genotype", "phenotype",
	"SampleName", "Histological_Type", "Body_Site", "Tumor", "Analyte_Type",
	"Disease",
	"age", "altitude", "environment_biome", "host", "host_body_site",
	"isolate", "location", "sex", "strain", "temperature", "dev_stage",
	"environment_feature", "environment_material", "environmental_medium",
	"environmental_sample", "host_genotype", "host_phenotype",
	"biomaterial_provider", "organism_part", "sampling_site", "analyte_type",
	"body_site", "disease_staging", "is_tumor", "subject_is_affected",
	"individual", "replicate", "experimental_factor",
}

// bodySiteColumn is concatenated with the blob for tissue-origin mapping;
// dbGaP-style schemas carry the anatomical site only here.
const bodySiteColumn = "Body_Site"
