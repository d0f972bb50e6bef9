// Configuration for the sampleatlas pipeline.
// See docs/ARCHITECTURE.md § Configuration.
package types

// Config holds pipeline parameters resolved from config.yaml and flags.
type Config struct {
	CellLineRef  string `json:"cell_line_ref" yaml:"cell_line_ref"`
	OutputDir    string `json:"output_dir" yaml:"output_dir"`
	FetchWorkers int    `json:"fetch_workers" yaml:"fetch_workers"`
	ENABaseURL   string `json:"ena_base_url" yaml:"ena_base_url"`
	MaxResults   int    `json:"max_results" yaml:"max_results"`
}

// Defaults applied when config.yaml leaves a key unset.
const (
	DefaultFetchWorkers = 4
	DefaultMaxResults   = 1000
	DefaultENABaseURL   = "https://www.ebi.ac.uk/ena/portal/api/search"
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.FetchWorkers <= 0 {
		return ErrWorkersInvalid
	}
	if c.MaxResults <= 0 {
		return ErrMaxResultsInvalid
	}
	if c.ENABaseURL == "" {
		return ErrBaseURLEmpty
	}
	return nil
}
