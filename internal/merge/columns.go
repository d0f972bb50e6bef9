// Preferred output column ordering for the merged table.
package merge

// PreferredColumns is the fixed column prefix for merged output: identity
// and library columns first, then the clinical and free-text fields the
// classifier reads. Only columns actually present appear; everything else
// follows in first-seen order. Extending the prefix is a data change here,
// never a merge-logic change.
var PreferredColumns = []string{
	"run_accession", "Experiment", "SampleName", "BioSample", "SRAStudy", "BioProject",
	"study_accession", "secondary_study_accession", "experiment_accession", "sample_accession",
	"secondary_sample_accession",
	"LibraryLayout", "LibraryStrategy", "LibrarySource", "Platform", "Model",
	"instrument_model", "library_layout", "library_strategy", "library_source",
	"read_count", "base_count", "first_public", "last_updated",
	// Disease-state classification fields.
	"age", "altitude", "cell_line", "cell_type", "disease", "environment_biome",
	"host", "host_body_site", "isolate", "location", "sex", "strain", "temperature", "tissue_type",
	"treatment", "genotype", "phenotype", "source_name", "biomaterial_provider", "organism_part",
	"sampling_site", "analyte_type", "body_site", "histological_type", "disease_staging",
	"is_tumor", "subject_is_affected", "individual", "replicate", "experimental_factor",
	"broker_name", "center_name", "experiment_title", "library_name", "library_selection",
	"scientific_name", "collection_date", "study_title", "sample_title",
	"submitted_ftp", "fastq_ftp", "dev_stage", "environment_feature", "environment_material",
	"environmental_medium", "environmental_sample", "host_genotype", "host_phenotype",
	"ReleaseDate", "LoadDate", "spots", "bases", "spots_with_mates", "avgLength", "size_MB",
	"AssemblyName", "download_path", "LibraryName", "LibrarySelection", "InsertSize", "InsertDev",
	"Study_Pubmed_id", "ProjectID", "Sample", "SampleType", "TaxID", "ScientificName",
	"g1k_pop_code", "source", "g1k_analysis_group", "Subject_ID", "Sex", "Disease", "Tumor",
	"Affection_Status", "Analyte_Type", "Histological_Type", "Body_Site", "CenterName",
	"Submission", "dbgap_study_accession", "Consent", "RunHash", "ReadHash",
}
